package shipping

// Method is one rateable shipping option for a destination. Methods come
// from the rating boundary; customers never author them.
type Method struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Carrier       string  `json:"carrier"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days"`
}
