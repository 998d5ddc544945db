package types

var fieldLabels = map[string]string{
	// numbers
	"grossArea":      "Brüt m²",
	"netArea":        "Net m²",
	"bathroomCount":  "Banyo Sayısı",
	"totalFloors":    "Kat Sayısı",
	"dues":           "Aidat (TL)",
	"roomCount":      "Oda Sayısı",
	"frontWidth":     "Cephe Genişliği (m)",
	"ceilingHeight":  "Tavan Yüksekliği (m)",
	"closedArea":     "Kapalı Alan m²",
	"openArea":       "Açık Alan m²",
	"powerCapacity":  "Elektrik Gücü (kW)",
	"floorAreaRatio": "Emsal (KAKS)",
	"heightLimit":    "Gabari (m)",

	// choices
	"rooms":       "Oda Sayısı",
	"floor":       "Bulunduğu Kat",
	"buildingAge": "Bina Yaşı",
	"heating":     "Isıtma",
	"facade":      "Cephe",
	"groundType":  "Zemin",
	"zoning":      "İmar Durumu",
	"deedStatus":  "Tapu Durumu",
	"capacity":    "Kapasite",

	// features
	"balcony":         "Balkon",
	"elevator":        "Asansör",
	"parking":         "Otopark",
	"furnished":       "Eşyalı",
	"inComplex":       "Site İçerisinde",
	"pool":            "Havuz",
	"security":        "Güvenlik",
	"garden":          "Bahçe",
	"meetingRoom":     "Toplantı Odası",
	"reception":       "Resepsiyon",
	"generator":       "Jeneratör",
	"airConditioning": "Klima",
	"showcase":        "Vitrin",
	"storage":         "Depo",
	"wc":              "WC",
	"kitchen":         "Mutfak",
	"streetFront":     "Cadde Üzeri",
	"alarm":           "Alarm",
	"crane":           "Vinç",
	"loadingRamp":     "Yükleme Rampası",
	"threePhasePower": "Trifaze Elektrik",
	"naturalGas":      "Doğalgaz",
	"office":          "Ofis Bölümü",
	"truckAccess":     "Tır Girişi",
	"sprinkler":       "Yangın Sprinkleri",
	"roadAccess":      "Yola Cephe",
	"electricity":     "Elektrik",
	"water":           "Su",
	"seaView":         "Deniz Manzarası",
	"cornerPlot":      "Köşe Parsel",
	"fenced":          "Çevrili",
	"swapAvailable":   "Takasa Uygun",
	"disabledAccess":  "Engelli Erişimi",
}

// FieldLabel is the display label of a detail field, or the name itself.
func FieldLabel(name string) string {
	if l, ok := fieldLabels[name]; ok {
		return l
	}
	return name
}
