package models

// Requests for the KPI HTTP endpoints. Defined in domain for consistency and reuse.

type DetectRequest struct {
	Method    string  `query:"method" json:"method" default:"zscore" validate:"oneof=zscore iqr"`
	Window    int     `query:"window" json:"window" default:"7" validate:"gte=2,lte=90"`
	Threshold float64 `query:"threshold" json:"threshold" validate:"omitempty,gt=0"`
	StartDate string  `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string  `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type TrendRequest struct {
	Months int `query:"months" json:"months" default:"12" validate:"gte=1,lte=60"`
}

type TopProductsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=200"`
}

type ProductsListRequest struct {
	Limit int `query:"limit" json:"limit" default:"1000" validate:"gte=1,lte=5000"`
}

type RecommendationsRequest struct {
	ProductID int64 `query:"product_id" json:"product_id" validate:"required,gt=0"`
	Limit     int   `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=50"`
}
