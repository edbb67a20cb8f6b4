package domain

// AssessmentInput is the raw request body for the POST assessment
// variants. Pointer fields distinguish a missing field from a zero value;
// every field is mandatory.
type AssessmentInput struct {
	Age         *int     `json:"age" validate:"required,min=1,max=150"`
	Gender      *string  `json:"gender" validate:"required,oneof=Male Female Other"`
	SystolicBP  *int     `json:"systolicBP" validate:"required,min=50,max=250"`
	DiastolicBP *int     `json:"diastolicBP" validate:"required,min=30,max=200"`
	Cholesterol *float64 `json:"cholesterol" validate:"required,min=0"`
	Diabetes    *bool    `json:"diabetes" validate:"required"`
}

// Metrics converts a validated input into fully-typed health metrics.
// Only call after validation has passed.
func (in AssessmentInput) Metrics() HealthMetrics {
	return HealthMetrics{
		Age:         *in.Age,
		Gender:      *in.Gender,
		SystolicBP:  *in.SystolicBP,
		DiastolicBP: *in.DiastolicBP,
		Cholesterol: *in.Cholesterol,
		Diabetes:    *in.Diabetes,
	}
}
