package rental

type RentReq struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}
