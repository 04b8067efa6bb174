package servicehistory

// Record is one service visit. Values returns the record's fields in the
// schema's column order, without the leading vehicle identifier
type Record interface {
	Values() []any
}

// RecordV1 is a v1 service visit; every field is required text
type RecordV1 struct {
	DealerName    *string `json:"dealerName" validate:"required"`
	TotalAmmount  *string `json:"totalAmmount" validate:"required"`
	DateOfSVC     *string `json:"dateOfSVC" validate:"required"`
	DealerNo      *string `json:"dealerNo" validate:"required"`
	ServiceType   *string `json:"serviceType" validate:"required"`
	NoOfRo        *string `json:"noOfRo" validate:"required"`
	MileAge       *string `json:"mileAge" validate:"required"`
	TypeOfPayment *string `json:"typeOfPayment" validate:"required"`
}

// Values implements Record
func (r RecordV1) Values() []any {
	return []any{
		r.DealerName,
		r.TotalAmmount,
		r.DateOfSVC,
		r.DealerNo,
		r.ServiceType,
		r.NoOfRo,
		r.MileAge,
		r.TypeOfPayment,
	}
}

// RecordV2 is a v2 service visit with typed amounts and counters.
// TypOfPayment is optional; absent or null is stored as NULL
type RecordV2 struct {
	LabourAmount    *float64 `json:"labourAmount" validate:"required"`
	PartAmount      *float64 `json:"partAmount" validate:"required"`
	TotalAmount     *float64 `json:"totalAmount" validate:"required"`
	DateOfBill      *string  `json:"dateOfBill" validate:"required"`
	RepairOrderDate *string  `json:"repairOrderDate" validate:"required"`
	DealerAddress   *string  `json:"dealerAddress" validate:"required"`
	GroupOfParent   *string  `json:"groupOfParent" validate:"required"`
	SrVehicleCd     *string  `json:"srVehicleCd" validate:"required"`
	CdLoc           *string  `json:"cdLoc" validate:"required"`
	NameOfSA        *string  `json:"nameOfSA" validate:"required"`
	NoOfJobCard     *string  `json:"noOfJobCard" validate:"required"`
	DateOfSVC       *string  `json:"dateOfSVC" validate:"required"`
	NoOfRO          *string  `json:"noOfRO" validate:"required"`
	DealerName      *string  `json:"dealerName" validate:"required"`
	DealerNo        *uint32  `json:"dealerNo" validate:"required"`
	Mileage         *uint32  `json:"mileage" validate:"required"`
	ServiceType     *string  `json:"serviceType" validate:"required"`
	TypOfPayment    *string  `json:"typOfPayment"`
}

// Values implements Record
func (r RecordV2) Values() []any {
	return []any{
		r.LabourAmount,
		r.PartAmount,
		r.TotalAmount,
		r.DateOfBill,
		r.RepairOrderDate,
		r.DealerAddress,
		r.GroupOfParent,
		r.SrVehicleCd,
		r.CdLoc,
		r.NameOfSA,
		r.NoOfJobCard,
		r.DateOfSVC,
		r.NoOfRO,
		r.DealerName,
		r.DealerNo,
		r.Mileage,
		r.ServiceType,
		r.TypOfPayment,
	}
}

// Request is the inbound envelope shared by both schema versions
type Request[R Record] struct {
	Code    *int       `json:"code" validate:"required"`
	Message *string    `json:"message" validate:"required"`
	Result  *Result[R] `json:"result" validate:"required"`
}

// Result carries the vehicle and its visits. An empty list is valid, a missing one is not
type Result[R Record] struct {
	VehicleNumber         *string `json:"vehicleNumber" validate:"required"`
	ServiceHistoryDetails []R     `json:"serviceHistoryDetails" validate:"required,dive"`
}

// RequestV1 is the v1 envelope
type RequestV1 = Request[RecordV1]

// RequestV2 is the v2 envelope
type RequestV2 = Request[RecordV2]

// Vehicle returns the vehicle identifier or "" when the envelope is incomplete
func (r Request[R]) Vehicle() string {
	if r.Result == nil || r.Result.VehicleNumber == nil {
		return ""
	}
	return *r.Result.VehicleNumber
}

// Records returns the visit list or nil when the envelope is incomplete
func (r Request[R]) Records() []R {
	if r.Result == nil {
		return nil
	}
	return r.Result.ServiceHistoryDetails
}
