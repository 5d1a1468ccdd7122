package request

type SaveLandlordRequest struct {
	Uuid    string `json:"uuid"` // 更新时必填
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type SavePropertyRequest struct {
	Uuid       string `json:"uuid"`
	LandlordId string `json:"landlord_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Kind       string `json:"kind"`
}

type SaveUnitRequest struct {
	Uuid       string `json:"uuid"`
	PropertyId string `json:"property_id"`
	UnitNumber string `json:"unit_number"`
	Bedrooms   int    `json:"bedrooms"`
	RentAmount string `json:"rent_amount"`
	IsOccupied bool   `json:"is_occupied"`
}

type SaveTenantRequest struct {
	Uuid     string `json:"uuid"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	IdNumber string `json:"id_number"`
}

type SaveLeaseRequest struct {
	Uuid       string `json:"uuid"`
	UnitId     string `json:"unit_id"`
	RenterId   string `json:"renter_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	RentAmount string `json:"rent_amount"`
	Status     string `json:"status"`
}

type DeleteRequest struct {
	Uuid string `json:"uuid"`
}

type ManagerAssignRequest struct {
	PropertyId string `json:"property_id"`
	UserId     string `json:"user_id"`
}
