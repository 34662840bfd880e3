package achievements

// Snapshot is everything the achievement rules look at, computed in one pass
// per evaluation.
type Snapshot struct {
	TotalCards     int `json:"total_cards"`
	UniqueCards    int `json:"unique_cards"`
	HoloCards      int `json:"holo_cards"`
	CompletedSets  int `json:"completed_sets"`
	AcceptedTrades int `json:"accepted_trades"`
}

// Definition is one achievement rule. Achievements are re-derived from the
// snapshot on every evaluation, so removing cards can revoke one.
type Definition struct {
	Key         string                `json:"key"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Qualifies   func(s Snapshot) bool `json:"-"`
}

// Definitions is the closed list of achievement rules.
var Definitions = []Definition{
	{
		Key:         "first_card",
		Name:        "First Card",
		Description: "Add your first card to the collection",
		Qualifies:   func(s Snapshot) bool { return s.TotalCards >= 1 },
	},
	{
		Key:         "collector_10",
		Name:        "Collector",
		Description: "Own 10 cards",
		Qualifies:   func(s Snapshot) bool { return s.TotalCards >= 10 },
	},
	{
		Key:         "collector_100",
		Name:        "Serious Collector",
		Description: "Own 100 cards",
		Qualifies:   func(s Snapshot) bool { return s.TotalCards >= 100 },
	},
	{
		Key:         "collector_500",
		Name:        "Hoarder",
		Description: "Own 500 cards",
		Qualifies:   func(s Snapshot) bool { return s.TotalCards >= 500 },
	},
	{
		Key:         "variety_25",
		Name:        "Variety Pack",
		Description: "Own 25 different cards",
		Qualifies:   func(s Snapshot) bool { return s.UniqueCards >= 25 },
	},
	{
		Key:         "shiny_10",
		Name:        "Shiny Hunter",
		Description: "Own 10 holo cards",
		Qualifies:   func(s Snapshot) bool { return s.HoloCards >= 10 },
	},
	{
		Key:         "set_complete",
		Name:        "Completionist",
		Description: "Complete an entire set",
		Qualifies:   func(s Snapshot) bool { return s.CompletedSets >= 1 },
	},
	{
		Key:         "first_trade",
		Name:        "Dealmaker",
		Description: "Complete your first trade",
		Qualifies:   func(s Snapshot) bool { return s.AcceptedTrades >= 1 },
	},
}
