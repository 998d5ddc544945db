package types

// ListMode controls how list-valued search filters are serialized.
type ListMode int

const (
	// ListRepeated emits one parameter per selected item.
	ListRepeated ListMode = iota
	// ListJoined emits a single comma-joined parameter.
	ListJoined
)

// FeatureMode controls how boolean feature filters are serialized.
type FeatureMode int

const (
	// FeatureBare emits key=true for every selected feature.
	FeatureBare FeatureMode = iota
	// FeatureJoined emits categoryFeatures=a,b,c.
	FeatureJoined
)

// CategoryFeaturesParam is the parameter joined feature filters are sent under.
const CategoryFeaturesParam = "categoryFeatures"

// ChoiceField is a field whose value comes from a fixed option list. In a
// listing it holds one option, in search filters any number of them.
type ChoiceField struct {
	Name    string
	Options []string
}

// CategorySchema is the closed field vocabulary of one category.
type CategorySchema struct {
	Category Category
	Subtypes []string

	// Numbers are numeric fields. A listing stores the value under the field
	// name; search filters store <name>Min and <name>Max.
	Numbers  []string
	Choices  []ChoiceField
	Features []string

	ListMode    ListMode
	FeatureMode FeatureMode
}

func (s CategorySchema) HasNumber(name string) bool {
	return containsString(s.Numbers, name)
}

func (s CategorySchema) HasFeature(name string) bool {
	return containsString(s.Features, name)
}

func (s CategorySchema) Choice(name string) (ChoiceField, bool) {
	for _, c := range s.Choices {
		if c.Name == name {
			return c, true
		}
	}
	return ChoiceField{}, false
}

func (c ChoiceField) Allows(option string) bool {
	return containsString(c.Options, option)
}

var (
	roomOptions     = []string{"1+0", "1+1", "2+1", "3+1", "4+1", "5+1", "6+"}
	floorOptions    = []string{"BODRUM", "ZEMIN", "BAHCE_KATI", "1", "2", "3", "4", "5", "6_10", "11_PLUS", "CATI_KATI"}
	buildingAges    = []string{"0", "1_5", "6_10", "11_15", "16_20", "21_PLUS"}
	heatingOptions  = []string{"DOGALGAZ_KOMBI", "MERKEZI", "YERDEN_ISITMA", "KLIMA", "SOBA", "YOK"}
	facadeOptions   = []string{"KUZEY", "GUNEY", "DOGU", "BATI"}
	zoningOptions   = []string{"KONUT_IMARLI", "TICARI_IMARLI", "SANAYI_IMARLI", "TARLA", "IMARSIZ"}
	deedOptions     = []string{"KAT_MULKIYETI", "KAT_IRTIFAKI", "HISSELI", "MUSTAKIL_TAPU"}
	groundOptions   = []string{"BETON", "EPOKSI", "TOPRAK", "ASFALT"}
	capacityOptions = []string{"0_50", "51_200", "201_500", "501_PLUS"}
)

var schemas = map[Category]CategorySchema{
	CategoryHousing: {
		Category: CategoryHousing,
		Subtypes: []string{"DAIRE", "MUSTAKIL_EV", "VILLA", "REZIDANS", "YAZLIK"},
		Numbers:  []string{"grossArea", "netArea", "bathroomCount", "totalFloors", "dues"},
		Choices: []ChoiceField{
			{Name: "rooms", Options: roomOptions},
			{Name: "floor", Options: floorOptions},
			{Name: "buildingAge", Options: buildingAges},
			{Name: "heating", Options: heatingOptions},
			{Name: "facade", Options: facadeOptions},
		},
		Features:    []string{"balcony", "elevator", "parking", "furnished", "inComplex", "pool", "security", "garden"},
		ListMode:    ListRepeated,
		FeatureMode: FeatureBare,
	},
	CategoryOffice: {
		Category: CategoryOffice,
		Subtypes: []string{"BURO", "PLAZA_KATI", "IS_MERKEZI", "EV_OFIS"},
		Numbers:  []string{"grossArea", "netArea", "roomCount", "totalFloors"},
		Choices: []ChoiceField{
			{Name: "floor", Options: floorOptions},
			{Name: "buildingAge", Options: buildingAges},
			{Name: "heating", Options: heatingOptions},
			{Name: "facade", Options: facadeOptions},
		},
		Features:    []string{"meetingRoom", "reception", "elevator", "parking", "generator", "airConditioning", "furnished", "security"},
		ListMode:    ListRepeated,
		FeatureMode: FeatureJoined,
	},
	CategoryCommercial: {
		Category: CategoryCommercial,
		Subtypes: []string{"DUKKAN", "MAGAZA", "ECZANE", "RESTORAN", "KAFE", "OTEL"},
		Numbers:  []string{"grossArea", "netArea", "frontWidth", "ceilingHeight"},
		Choices: []ChoiceField{
			{Name: "floor", Options: floorOptions},
			{Name: "buildingAge", Options: buildingAges},
			{Name: "heating", Options: heatingOptions},
			{Name: "facade", Options: facadeOptions},
		},
		Features:    []string{"showcase", "storage", "parking", "wc", "kitchen", "airConditioning", "streetFront", "alarm"},
		ListMode:    ListJoined,
		FeatureMode: FeatureJoined,
	},
	CategoryIndustrial: {
		Category: CategoryIndustrial,
		Subtypes: []string{"FABRIKA", "DEPO", "ATOLYE", "IMALATHANE"},
		Numbers:  []string{"closedArea", "openArea", "ceilingHeight", "powerCapacity"},
		Choices: []ChoiceField{
			{Name: "buildingAge", Options: buildingAges},
			{Name: "groundType", Options: groundOptions},
			{Name: "heating", Options: heatingOptions},
		},
		Features:    []string{"crane", "loadingRamp", "threePhasePower", "naturalGas", "office", "security", "truckAccess", "sprinkler"},
		ListMode:    ListJoined,
		FeatureMode: FeatureJoined,
	},
	CategoryLand: {
		Category: CategoryLand,
		Subtypes: []string{"IMARLI_ARSA", "TARLA", "BAG_BAHCE", "ZEYTINLIK"},
		Numbers:  []string{"netArea", "floorAreaRatio", "heightLimit"},
		Choices: []ChoiceField{
			{Name: "zoning", Options: zoningOptions},
			{Name: "deedStatus", Options: deedOptions},
		},
		Features:    []string{"roadAccess", "electricity", "water", "naturalGas", "seaView", "cornerPlot", "fenced", "swapAvailable"},
		ListMode:    ListRepeated,
		FeatureMode: FeatureJoined,
	},
	CategoryService: {
		Category: CategoryService,
		Subtypes: []string{"OTOPARK", "BENZINLIK", "DUGUN_SALONU", "SPOR_TESISI"},
		Numbers:  []string{"grossArea", "openArea"},
		Choices: []ChoiceField{
			{Name: "capacity", Options: capacityOptions},
			{Name: "heating", Options: heatingOptions},
		},
		Features:    []string{"parking", "wc", "security", "disabledAccess", "generator", "airConditioning"},
		ListMode:    ListJoined,
		FeatureMode: FeatureJoined,
	},
}

// SchemaFor returns the schema of a category, or an empty schema.
func SchemaFor(c Category) CategorySchema {
	return schemas[c]
}

var codeLabels = map[string]string{
	"DAIRE":         "Daire",
	"MUSTAKIL_EV":   "Müstakil Ev",
	"VILLA":         "Villa",
	"REZIDANS":      "Rezidans",
	"YAZLIK":        "Yazlık",
	"BURO":          "Büro",
	"PLAZA_KATI":    "Plaza Katı",
	"IS_MERKEZI":    "İş Merkezi",
	"EV_OFIS":       "Ev Ofis",
	"DUKKAN":        "Dükkan",
	"MAGAZA":        "Mağaza",
	"ECZANE":        "Eczane",
	"RESTORAN":      "Restoran",
	"KAFE":          "Kafe",
	"OTEL":          "Otel",
	"FABRIKA":       "Fabrika",
	"DEPO":          "Depo",
	"ATOLYE":        "Atölye",
	"IMALATHANE":    "İmalathane",
	"IMARLI_ARSA":   "İmarlı Arsa",
	"TARLA":         "Tarla",
	"BAG_BAHCE":     "Bağ & Bahçe",
	"ZEYTINLIK":     "Zeytinlik",
	"OTOPARK":       "Otopark",
	"BENZINLIK":     "Benzinlik",
	"DUGUN_SALONU":  "Düğün Salonu",
	"SPOR_TESISI":   "Spor Tesisi",
	"KAT_MULKIYETI": "Kat Mülkiyeti",
	"KAT_IRTIFAKI":  "Kat İrtifakı",
	"HISSELI":       "Hisseli",
	"MUSTAKIL_TAPU": "Müstakil Tapu",
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
