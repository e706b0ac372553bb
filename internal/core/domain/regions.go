package domain

// Wilayas lists the top-level regions offered by the search filters.
var Wilayas = []string{
	"Alger", "Oran", "Constantine", "Annaba", "Blida", "Batna", "Djelfa", "Sétif",
}

// communesByWilaya enumerates the known second-level subdivisions per wilaya.
// Wilayas without an entry have no enumerated communes.
var communesByWilaya = map[string][]string{
	"Alger":       {"Alger Centre", "Hydra", "El Mouradia", "Bab El Oued", "Hussein Dey"},
	"Oran":        {"Oran", "Es Sénia", "Bir El Djir", "Sidi Bel Abbès"},
	"Constantine": {"Constantine", "El Khroub", "Ain Smara", "Hamma Bouziane"},
}

// CommunesOf returns the known communes of a wilaya, or nil when none are
// enumerated.
func CommunesOf(wilaya string) []string {
	return communesByWilaya[wilaya]
}

// DefaultCommune returns the commune a selection must reset to when the
// wilaya filter changes: the wilaya's first known commune, or empty when the
// wilaya is empty or has no enumerated communes. Clearing the wilaya
// therefore clears the commune as well.
func DefaultCommune(wilaya string) string {
	if wilaya == "" {
		return ""
	}
	communes := communesByWilaya[wilaya]
	if len(communes) == 0 {
		return ""
	}
	return communes[0]
}
