package feedback

type SubmitRequest struct {
	Hygiene       int    `json:"hygiene" validate:"gte=1,lte=5"`
	Safety        int    `json:"safety" validate:"gte=1,lte=5"`
	StaffBehavior int    `json:"staff_behavior" validate:"gte=1,lte=5"`
	Comments      string `json:"comments" validate:"max=2000"`
}
