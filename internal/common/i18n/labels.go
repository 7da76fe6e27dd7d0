package i18n

// labels holds the dashboard chrome. Keys are addressed from templates as
// plain strings, e.g. {{.T "leases.tenant"}} or {{.Label "status" .Status}}.
var labels = map[Locale]map[Key]string{
	Indonesian: {
		"actions.search":                  "Cari",
		"common.all":                      "Semua",
		"common.days":                     "hari",
		"common.status":                   "Status",
		"realestate.properties":           "Properti",
		"realestate.total_area":           "Total luas",
		"realestate.market_value":         "Nilai pasar",
		"realestate.occupancy":            "Okupansi",
		"realestate.name":                 "Nama",
		"realestate.city":                 "Kota",
		"realestate.type":                 "Jenis",
		"realestate.area":                 "Luas",
		"realestate.search_placeholder":   "Nama, alamat, kota atau provinsi",
		"leases.active":                   "Kontrak aktif",
		"leases.expiring_90":              "Berakhir dalam 90 hari",
		"leases.expiring_within":          "Kontrak yang berakhir dalam",
		"leases.income":                   "Pendapatan sewa bulanan",
		"leases.cost":                     "Biaya sewa bulanan",
		"leases.tenant":                   "Penyewa",
		"leases.type":                     "Jenis",
		"leases.period":                   "Periode",
		"leases.monthly_rent":             "Sewa bulanan",
		"leases.end_date":                 "Tanggal berakhir",
		"leases.days_left":                "Sisa hari",
		"spaces.building":                 "Gedung",
		"spaces.floors":                   "Lantai",
		"spaces.spaces":                   "Ruang",
		"spaces.capacity":                 "Kapasitas",
		"spaces.occupied":                 "Terisi",
		"spaces.utilization":              "Utilisasi",
		"spaces.space_type":               "Jenis ruang",
		"maintenance.title":               "Pekerjaan",
		"maintenance.priority":            "Prioritas",
		"maintenance.assignee":            "Petugas",
		"maintenance.due":                 "Tenggat",
		"maintenance.completion_rate":     "Tingkat penyelesaian",
		"maintenance.backlog_by_priority": "Pekerjaan tertunda per prioritas",
		"environmental.month":             "Bulan",
		"environmental.electricity":       "Listrik",
		"environmental.water":             "Air",
		"environmental.gas":               "Gas",
		"environmental.emissions":         "Emisi",
		"environmental.change":            "Perubahan bulan terakhir",
		"environmental.months_covered":    "Jumlah bulan",
		"workplace.category":              "Kategori",
		"workplace.available":             "Tersedia",
		"workplace.unavailable":           "Tidak tersedia",
		"workplace.responses":             "Tanggapan",
		"workplace.average_rating":        "Rata-rata penilaian",
		"workplace.promoters":             "Penilaian 4-5",
		"certification.total":             "Sertifikat",
		"certification.score":             "Skor",
		"certification.valid_until":       "berlaku hingga",
		"certification.category":          "Kategori",
		"certification.points":            "Poin",
		"certification.gap":               "Perlu perhatian",

		"status.active":       "Aktif",
		"status.under_review": "Dalam peninjauan",
		"status.disposed":     "Dilepas",
		"status.expiring":     "Akan berakhir",
		"status.expired":      "Berakhir",
		"status.open":         "Terbuka",
		"status.in_progress":  "Dikerjakan",
		"status.completed":    "Selesai",
		"status.certified":    "Tersertifikasi",

		"lease_type.lessor": "Disewakan",
		"lease_type.lessee": "Disewa",

		"priority.critical": "Kritis",
		"priority.high":     "Tinggi",
		"priority.medium":   "Sedang",
		"priority.low":      "Rendah",

		"property_type.office":      "Perkantoran",
		"property_type.retail":      "Ritel",
		"property_type.warehouse":   "Gudang",
		"property_type.data_center": "Pusat data",

		"space_type.office":  "Ruang kerja",
		"space_type.meeting": "Ruang rapat",
		"space_type.desk":    "Meja bersama",
		"space_type.focus":   "Ruang fokus",
		"space_type.common":  "Area bersama",

		"amenity.worship":  "Ibadah",
		"amenity.wellness": "Kesehatan",
		"amenity.food":     "Makanan",
		"amenity.mobility": "Mobilitas",

		"feedback.cleanliness": "Kebersihan",
		"feedback.hvac":        "Tata udara",
		"feedback.food":        "Makanan",
		"feedback.security":    "Keamanan",
	},
	English: {
		"actions.search":                  "Search",
		"common.all":                      "All",
		"common.days":                     "days",
		"common.status":                   "Status",
		"realestate.properties":           "Properties",
		"realestate.total_area":           "Total area",
		"realestate.market_value":         "Market value",
		"realestate.occupancy":            "Occupancy",
		"realestate.name":                 "Name",
		"realestate.city":                 "City",
		"realestate.type":                 "Type",
		"realestate.area":                 "Area",
		"realestate.search_placeholder":   "Name, address, city or province",
		"leases.active":                   "Active leases",
		"leases.expiring_90":              "Expiring within 90 days",
		"leases.expiring_within":          "Leases ending within",
		"leases.income":                   "Monthly rent income",
		"leases.cost":                     "Monthly rent cost",
		"leases.tenant":                   "Tenant",
		"leases.type":                     "Type",
		"leases.period":                   "Period",
		"leases.monthly_rent":             "Monthly rent",
		"leases.end_date":                 "End date",
		"leases.days_left":                "Days left",
		"spaces.building":                 "Building",
		"spaces.floors":                   "Floors",
		"spaces.spaces":                   "Spaces",
		"spaces.capacity":                 "Capacity",
		"spaces.occupied":                 "Occupied",
		"spaces.utilization":              "Utilization",
		"spaces.space_type":               "Space type",
		"maintenance.title":               "Work",
		"maintenance.priority":            "Priority",
		"maintenance.assignee":            "Assignee",
		"maintenance.due":                 "Due",
		"maintenance.completion_rate":     "Completion rate",
		"maintenance.backlog_by_priority": "Backlog by priority",
		"environmental.month":             "Month",
		"environmental.electricity":       "Electricity",
		"environmental.water":             "Water",
		"environmental.gas":               "Gas",
		"environmental.emissions":         "Emissions",
		"environmental.change":            "Change last month",
		"environmental.months_covered":    "Months covered",
		"workplace.category":              "Category",
		"workplace.available":             "Available",
		"workplace.unavailable":           "Unavailable",
		"workplace.responses":             "Responses",
		"workplace.average_rating":        "Average rating",
		"workplace.promoters":             "Rated 4-5",
		"certification.total":             "Certificates",
		"certification.score":             "Score",
		"certification.valid_until":       "valid until",
		"certification.category":          "Category",
		"certification.points":            "Points",
		"certification.gap":               "Needs attention",

		"status.active":       "Active",
		"status.under_review": "Under review",
		"status.disposed":     "Disposed",
		"status.expiring":     "Expiring",
		"status.expired":      "Expired",
		"status.open":         "Open",
		"status.in_progress":  "In progress",
		"status.completed":    "Completed",
		"status.certified":    "Certified",

		"lease_type.lessor": "Leased out",
		"lease_type.lessee": "Leased in",

		"priority.critical": "Critical",
		"priority.high":     "High",
		"priority.medium":   "Medium",
		"priority.low":      "Low",

		"property_type.office":      "Office",
		"property_type.retail":      "Retail",
		"property_type.warehouse":   "Warehouse",
		"property_type.data_center": "Data center",

		"space_type.office":  "Office",
		"space_type.meeting": "Meeting room",
		"space_type.desk":    "Hot desk",
		"space_type.focus":   "Focus room",
		"space_type.common":  "Common area",

		"amenity.worship":  "Worship",
		"amenity.wellness": "Wellness",
		"amenity.food":     "Food",
		"amenity.mobility": "Mobility",

		"feedback.cleanliness": "Cleanliness",
		"feedback.hvac":        "Air conditioning",
		"feedback.food":        "Food",
		"feedback.security":    "Security",
	},
}

func init() {
	for locale, msgs := range labels {
		for k, v := range msgs {
			catalog[locale][k] = v
		}
	}
}
