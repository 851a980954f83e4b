package rules

import "github.com/starcrest/shipadvisor/model"

// roomEnv builds the evaluation environment for one room. Conditions see the
// room's derived attributes under "room" plus the ship-wide armor scalar,
// and nothing else; expr runs the compiled condition against this map only,
// so conditions are sandboxed by construction.
//
// Attribute names mirror the serialized room record, e.g.:
//
//	room.powered, room.power, room.armor, room.type, room.short_name,
//	room.essential, room.num_crew, room.upgrading, shipArmorValue
func roomEnv(r *model.Room, shipArmorValue int) map[string]any {
	return map[string]any{
		"room": map[string]any{
			"id":            r.InstanceID,
			"design_id":     r.DesignID,
			"type":          r.RoomType,
			"short_name":    r.ShortName,
			"lvl":           r.Level,
			"powered":       r.Powered,
			"power":         r.Power,
			"armor":         r.AccumulatedArmor,
			"armor_ability": r.ArmorAbility,
			"essential":     r.Essential,
			"num_crew":      r.CrewCapacity,
			"upgrading":     r.Upgrading,
		},
		"shipArmorValue": shipArmorValue,
	}
}
