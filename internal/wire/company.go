package wire

import "encoding/json"

func init() {
	register(TypeCompanyListingRequest, "get_company_listing_request")
	register(TypeCompanyListingResponse, "get_company_listing_response")
}

// CompanyListingRequest asks for the list of all companies.
type CompanyListingRequest struct{}

func (m *CompanyListingRequest) Type() uint64 { return TypeCompanyListingRequest }

func (m *CompanyListingRequest) Serialize() ([]byte, error) {
	return json.Marshal(struct {
		Type uint64 `json:"type"`
	}{TypeCompanyListingRequest})
}

func DeserializeCompanyListingRequest(d *Document) (*CompanyListingRequest, bool) {
	if !d.matches("get_company_listing_request", TypeCompanyListingRequest) {
		return nil, false
	}
	return &CompanyListingRequest{}, true
}

// CompanyEntry is one company in a listing.
type CompanyEntry struct {
	Name    string           `json:"name"`
	Members uint64           `json:"members"`
	Bonuses map[string]int64 `json:"bonuses"`
}

// CompanyListingResponse carries every company and its stat bonuses.
type CompanyListingResponse struct {
	Companies []CompanyEntry
}

func (m *CompanyListingResponse) Type() uint64 { return TypeCompanyListingResponse }

func (m *CompanyListingResponse) Serialize() ([]byte, error) {
	companies := m.Companies
	if companies == nil {
		companies = []CompanyEntry{}
	}
	return json.Marshal(struct {
		Type      uint64         `json:"type"`
		Companies []CompanyEntry `json:"companies"`
	}{TypeCompanyListingResponse, companies})
}

func DeserializeCompanyListingResponse(d *Document) (*CompanyListingResponse, bool) {
	if !d.requires("get_company_listing_response", "companies") ||
		!d.matches("get_company_listing_response", TypeCompanyListingResponse) {
		return nil, false
	}
	m := &CompanyListingResponse{Companies: []CompanyEntry{}}
	d.decode("companies", &m.Companies)
	return m, true
}
