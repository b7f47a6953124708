package upc

// LookupResponse is the body of a UPCitemdb-style lookup response
type LookupResponse struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Total   int    `json:"total"`
	Offset  int    `json:"offset"`
	Items   []Item `json:"items"`
}

// Item is a single product entry from the provider
type Item struct {
	EAN                  string   `json:"ean"`
	UPC                  string   `json:"upc"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Brand                string   `json:"brand"`
	Model                string   `json:"model"`
	Color                string   `json:"color"`
	Size                 string   `json:"size"`
	Dimension            string   `json:"dimension"`
	Weight               string   `json:"weight"`
	Category             string   `json:"category"`
	Currency             string   `json:"currency"`
	LowestRecordedPrice  float64  `json:"lowest_recorded_price"`
	HighestRecordedPrice float64  `json:"highest_recorded_price"`
	Images               []string `json:"images"`
	Offers               []Offer  `json:"offers"`
}

// Offer is a merchant listing for an item
type Offer struct {
	Merchant string  `json:"merchant"`
	Domain   string  `json:"domain"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Link     string  `json:"link"`
}
