package holidayapi

// Holiday праздник из Nager.Date (/PublicHolidays/{year}/{country})
type Holiday struct {
	Date        string `json:"date"` // YYYY-MM-DD
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}
