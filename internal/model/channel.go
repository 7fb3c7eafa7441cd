package model

// Channel names a way of turning a minion's output into coins.
// Keep these values stable; they are used as sort keys and CSV column suffixes.
type Channel string

const (
	ChannelNPC         Channel = "npc"
	ChannelInstantSell Channel = "instant_sell"
	ChannelSellOrder   Channel = "sell_order"
	ChannelOptimal     Channel = "optimal"
	ChannelHopperOnly  Channel = "hopper_only"
)

// Channels lists every channel in presentation order.
var Channels = []Channel{ChannelNPC, ChannelInstantSell, ChannelSellOrder, ChannelOptimal, ChannelHopperOnly}

// ParseChannel accepts a channel name; ok is false for unknown names.
func ParseChannel(s string) (Channel, bool) {
	for _, c := range Channels {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
