package rules

// DefaultRules returns the built-in advisory rule set, used when no rule
// file is configured or the configured file yields zero rules. All
// conditions are hand-written expr and are kept in sync with the shipped
// room_rules.dsl; rule order matters because the first match per room wins.
func DefaultRules() []*Rule {
	return []*Rule{
		{
			Name:         "Unpowered Room Armor Check",
			ConditionSrc: `!room.powered && room.armor > 0`,
			Actions: []Action{
				{Kind: ActionPenalty, Penalty: -5},
				{Kind: ActionMessage, Message: armorHookMessage},
			},
		},
		{
			Name:         "Unarmored System Check",
			ConditionSrc: `room.powered && room.armor == 0`,
			Actions: []Action{
				{Kind: ActionPenalty, Penalty: -3},
				{Kind: ActionMessage, Message: "Powered rooms should be protected by armor"},
			},
		},
		{
			Name:         "Under-Armored System Check",
			ConditionSrc: `room.powered && room.armor > 0 && room.armor < shipArmorValue`,
			Actions: []Action{
				{Kind: ActionPenalty, Penalty: -1},
				{Kind: ActionMessage, Message: "Room armor is below the ship's armor value"},
			},
		},
		{
			Name:         "Essential System Upgrading Check",
			ConditionSrc: `room.essential && room.upgrading`,
			Actions: []Action{
				{Kind: ActionPenalty, Penalty: -2},
				{Kind: ActionMessage, Message: "Essential systems should not upgrade during tournament windows"},
			},
		},
	}
}
