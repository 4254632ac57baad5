package models

// Overview holds the headline KPI figures.
type Overview struct {
	TotalRevenue float64 `json:"total_revenue"`
	Revenue30d   float64 `json:"revenue_30d"`
	MAU30d       int64   `json:"mau_30d"`
}

// TrendPoint is one month of revenue for the trend chart.
type TrendPoint struct {
	Period  Date    `json:"period"`
	Revenue float64 `json:"revenue"`
}

// TopProduct is a product ranked by completed-order revenue.
type TopProduct struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// ProductRef is a minimal product reference for picker widgets.
type ProductRef struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}

// Recommendation is a co-purchased product with its co-occurrence count.
type Recommendation struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	CoCount   int64  `json:"co_count"`
}
