package service

import (
	"fmt"

	"RentLink/internal/modules/notify/domain/entity"
	"RentLink/internal/modules/notify/domain/event"
)

var entityLabels = map[event.EntityType]string{
	event.EntityLandlord: "Landlord",
	event.EntityProperty: "Property",
	event.EntityUnit:     "Unit",
	event.EntityTenant:   "Tenant",
	event.EntityLease:    "Lease",
}

func entityLabel(t event.EntityType) string {
	if l, ok := entityLabels[t]; ok {
		return l
	}
	return "Record"
}

// renderEvent 按变更类型套用固定模板
func renderEvent(ev *event.ChangeEvent) (category, priority, title, message string) {
	label := entityLabel(ev.EntityType)
	switch ev.Kind {
	case event.KindCreated:
		return entity.CategoryMasterfileCreated, entity.PriorityMedium,
			fmt.Sprintf("New %s Added", label),
			fmt.Sprintf("%s has been added to the system.", ev.DisplayName)
	case event.KindDeleted:
		return entity.CategoryMasterfileDeleted, entity.PriorityHigh,
			fmt.Sprintf("%s Removed", label),
			fmt.Sprintf("%s has been removed from the system.", ev.DisplayName)
	default:
		return entity.CategoryMasterfileUpdated, entity.PriorityMedium,
			fmt.Sprintf("%s Updated", label),
			fmt.Sprintf("%s has been updated (%d field(s) changed).", ev.DisplayName, len(ev.FieldDiffs))
	}
}
