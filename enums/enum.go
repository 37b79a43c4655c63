package enums

const (
	CategoryChild         = "child"
	CategoryPregnant      = "pregnant"
	CategoryBreastfeeding = "breastfeeding"

	GenderMale   = "male"
	GenderFemale = "female"

	TrimesterFirst  = "1"
	TrimesterSecond = "2"
	TrimesterThird  = "3"

	BreastfeedingEarly = "0-6"
	BreastfeedingLate  = ">6"

	RiskLow    = "Rendah"
	RiskMedium = "Sedang"
	RiskHigh   = "Tinggi"

	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"

	RoleCarbohydrate = "carbohydrate"
	RoleVegetable    = "vegetable"
	RoleProtein      = "protein"

	ConnectionName      = "gizi"
	QueueRecommendation = "recommendation"
	RoleGuest           = "guest"
	CatalogFromFile     = "file"
	CatalogFromDatabase = "database"
)
