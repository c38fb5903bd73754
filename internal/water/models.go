package water

// Region is an Austrian federal state (Bundesland) under which sites are grouped.
type Region string

const (
	RegionUpperAustria Region = "Oberösterreich"
	RegionLowerAustria Region = "Niederösterreich"
	RegionVienna       Region = "Wien"
	RegionBurgenland   Region = "Burgenland"
	RegionStyria       Region = "Steiermark"
	RegionCarinthia    Region = "Kärnten"
	RegionSalzburg     Region = "Salzburg"
	RegionTyrol        Region = "Tirol"
	RegionVorarlberg   Region = "Vorarlberg"
)

// Regions lists all federal states in display order.
var Regions = []Region{
	RegionUpperAustria,
	RegionLowerAustria,
	RegionVienna,
	RegionBurgenland,
	RegionStyria,
	RegionCarinthia,
	RegionSalzburg,
	RegionTyrol,
	RegionVorarlberg,
}

// Valid reports whether r is one of the nine federal states.
func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

// Reading is one timestamped value of a station's time series.
type Reading struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// Entry is the normalized view of one monitored bathing site, regardless of
// which upstream produced it.
type Entry struct {
	Region          Region    `json:"region"`
	SiteID          string    `json:"siteId,omitempty"`
	Official        bool      `json:"isOfficialSource"`
	SiteName        string    `json:"siteName"`
	ReadingDate     string    `json:"readingDate"`
	Recent          bool      `json:"isRecent"`
	Temperature     *float64  `json:"temperature"`
	VisibilityDepth *float64  `json:"visibilityDepth"`
	QualityCode     *int      `json:"qualityCode"`
	RawSeries       []Reading `json:"rawSeries,omitempty"`
}

// RegistryDocument is the top-level shape of the official registry feed.
type RegistryDocument struct {
	Version string        `json:"VERSION"`
	Regions []RegionGroup `json:"BUNDESLAENDER"`
}

// RegionGroup holds the sites of one federal state.
type RegionGroup struct {
	Region Region `json:"BUNDESLAND"`
	Sites  []Site `json:"BADEGEWAESSER"`
}

// Site is a raw record of the official registry. Region is filled in when the
// registry is flattened; it is not part of the upstream site object.
type Site struct {
	ID           string `json:"BADEGEWAESSERID"`
	Name         string `json:"BADEGEWAESSERNAME"`
	District     string `json:"BEZIRK"`
	Municipality string `json:"GEMEINDE"`
	Longitude    string `json:"LONGITUDE"`
	Latitude     string `json:"LATITUDE"`

	Contact      string `json:"ANSPRECHSTELLE"`
	Street       string `json:"STRASSE_NUMMER"`
	PostalCity   string `json:"PLZ_ORT"`
	Phone        string `json:"TELEFON"`
	Email        string `json:"EMAIL"`
	Closed       string `json:"TGESPERRT"`
	ClosedReason string `json:"SPERRGRUND"`

	EnterococciUnit string `json:"ENTEROKOKKEN_EINHEIT"`
	EColiUnit       string `json:"E_COLI_EINHEIT"`
	TemperatureUnit string `json:"WASSERTEMPERATUR_EINHEIT"`
	VisibilityUnit  string `json:"SICHTTIEFE_EINHEIT"`

	QualityYearCurrent   string `json:"WASSERQUALITAET_JAHR_HEUER"`
	Quality2023          string `json:"QUALITAET_2023"`
	QualityYearPrevious  string `json:"WASSERQUALITAET_JAHR_VORIGES"`
	Quality2022          string `json:"QUALITAET_2022"`
	QualityYearPrevious2 string `json:"WASSERQUALITAET_JAHR_VOR_VORIGES"`
	Quality2021          string `json:"QUALITAET_2021"`
	QualityYearPrevious3 string `json:"WASSERQUALITAET_JAHR_VOR_VOR_VORIGES"`
	Quality2020          string `json:"QUALITAET_2020"`
	Quality2019          string `json:"QUALITAET_2019"`

	Measurements []Measurement `json:"MESSWERTE"`

	Region Region `json:"BUNDESLAND,omitempty"`
}

// Measurement is one dated sample of a registry site, newest first.
type Measurement struct {
	Date             string   `json:"D"` // DD.MM.YYYY
	EnterococciFlag  *string  `json:"O_E"`
	Enterococci      *float64 `json:"E"`
	EColiFlag        *string  `json:"O_EC"`
	EColi            *float64 `json:"E_C"`
	WaterTemperature *float64 `json:"W"`
	VisibilityDepth  *float64 `json:"S"`
	Quality          *float64 `json:"A"`
}

// QualityCode returns the quality classification as an integer, if present.
func (m Measurement) QualityCode() *int {
	if m.Quality == nil {
		return nil
	}
	code := int(*m.Quality)
	return &code
}
