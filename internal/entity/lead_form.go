package entity

// LeadForm is the individual lead creation payload, as accepted by the CRM
// API's POST /leads/individual.
type LeadForm struct {
	CompanyName         string   `json:"companyName"`
	Sector              string   `json:"sector"`
	SubSector           string   `json:"subSector,omitempty"`
	Location            string   `json:"location,omitempty"`
	BusinessDescription string   `json:"businessDescription,omitempty"`
	ChannelPartner      string   `json:"ChannelPartner,omitempty"` // upstream spelling
	Website             string   `json:"website,omitempty"`
	RevenueInrCr        *float64 `json:"revenueInrCr,omitempty"`
	EbitdaInrCr         *float64 `json:"ebitdaInrCr,omitempty"`
	PatInrCr            *float64 `json:"patInrCr,omitempty"`
	AssignedTo          string   `json:"assignedTo,omitempty"`
}
