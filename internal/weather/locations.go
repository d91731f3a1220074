package weather

import (
	"sort"
	"strings"
)

// Coordinates is a latitude/longitude pair for a hippodrome.
type Coordinates struct {
	Lat float64
	Lon float64
}

// hippodromeCoordinates maps normalized hippodrome names to
// coordinates. Keys are uppercase with diacritics stripped.
var hippodromeCoordinates = map[string]Coordinates{
	"VINCENNES":        {48.8223, 2.4472},
	"PARIS-VINCENNES":  {48.8223, 2.4472},
	"LONGCHAMP":        {48.8610, 2.2330},
	"PARISLONGCHAMP":   {48.8610, 2.2330},
	"AUTEUIL":          {48.8505, 2.2583},
	"SAINT-CLOUD":      {48.8447, 2.2093},
	"CHANTILLY":        {49.1821, 2.4773},
	"DEAUVILLE":        {49.3570, 0.0719},
	"CLAIREFONTAINE":   {49.3503, 0.0594},
	"CAGNES-SUR-MER":   {43.6613, 7.1429},
	"MARSEILLE BORELY": {43.2442, 5.3786},
	"MARSEILLE VIVAUX": {43.2712, 5.4175},
	"LYON PARILLY":     {45.7194, 4.9027},
	"LYON LA SOIE":     {45.7613, 4.9258},
	"BORDEAUX LE BOUSCAT": {44.8660, -0.5998},
	"TOULOUSE":         {43.5656, 1.4106},
	"NANTES":           {47.2550, -1.5811},
	"ANGERS":           {47.4605, -0.5965},
	"CAEN":             {49.1780, -0.3532},
	"LAVAL":            {48.0632, -0.7537},
	"LE CROISE-LAROCHE": {50.6629, 3.0872},
	"AMIENS":           {49.9083, 2.2649},
	"REIMS":            {49.2436, 4.0255},
	"STRASBOURG":       {48.5900, 7.7190},
	"VICHY":            {46.1244, 3.4198},
	"PAU":              {43.3190, -0.3370},
	"TARBES":           {43.2224, 0.0580},
	"COMPIEGNE":        {49.4058, 2.8269},
	"FONTAINEBLEAU":    {48.4202, 2.6706},
	"MAISONS-LAFFITTE": {48.9529, 2.1460},
	"ENGHIEN":          {48.9719, 2.3028},
	"MESLAY-DU-MAINE":  {47.9503, -0.5523},
	"SAINT-MALO":       {48.6333, -1.9884},
	"LA CAPELLE":       {49.9636, 3.9180},
	"CHERBOURG":        {49.6330, -1.5881},
	"GRAIGNES":         {49.2399, -1.2060},
	"ARGENTAN":         {48.7455, -0.0205},
	"LISIEUX":          {49.1396, 0.2267},
	"SABLE-SUR-SARTHE": {47.8400, -0.3337},
}

// sortedHippodromeKeys holds the map keys in lexical order so the
// substring fallback always resolves an ambiguous name the same way.
var sortedHippodromeKeys = func() []string {
	keys := make([]string, 0, len(hippodromeCoordinates))
	for k := range hippodromeCoordinates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// frenchDiacritics folds the accented characters that appear in
// hippodrome names onto their ASCII base letters.
var frenchDiacritics = strings.NewReplacer(
	"À", "A", "Â", "A", "Ä", "A",
	"É", "E", "È", "E", "Ê", "E", "Ë", "E",
	"Î", "I", "Ï", "I",
	"Ô", "O", "Ö", "O",
	"Ù", "U", "Û", "U", "Ü", "U",
	"Ç", "C",
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

// NormalizeLocationKey uppercases a hippodrome name and strips
// diacritics, producing the canonical cache/lookup key.
func NormalizeLocationKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(frenchDiacritics.Replace(name)))
}

// ResolveCoordinates resolves a hippodrome name to coordinates. Exact
// match on the normalized name first, then substring containment in
// both directions. Returns false when the venue is unknown.
func ResolveCoordinates(name string) (Coordinates, string, bool) {
	key := NormalizeLocationKey(name)
	if key == "" {
		return Coordinates{}, "", false
	}
	if c, ok := hippodromeCoordinates[key]; ok {
		return c, key, true
	}

	for _, known := range sortedHippodromeKeys {
		if strings.Contains(key, known) || strings.Contains(known, key) {
			return hippodromeCoordinates[known], known, true
		}
	}

	return Coordinates{}, "", false
}
