// Package geodata holds the static commune → wilaya reference table used to
// anchor imported store locations. The table is read-only and loaded once;
// entries (including the spelling variants) come from the source dataset and
// are preserved as authored.
package geodata

// Commune is a reference coordinate for a commune, with the wilaya it
// belongs to.
type Commune struct {
	Wilaya string
	Lat    float64
	Lng    float64
}

// DefaultWilaya and the Alger centroid are used for communes missing from the
// table.
const DefaultWilaya = "Alger"

// Default returns the fallback coordinate (Alger centre).
func Default() Commune {
	return Commune{Wilaya: DefaultWilaya, Lat: 36.7538, Lng: 3.0588}
}

// Lookup resolves a commune name against the reference table. Matching is
// exact, case- and accent-sensitive as authored.
func Lookup(name string) (Commune, bool) {
	c, ok := communes[name]
	return c, ok
}

var communes = map[string]Commune{
	// Alger et ses communes
	"Cheraga":       {Wilaya: "Alger", Lat: 36.6175, Lng: 2.9614},
	"Delly Brahim":  {Wilaya: "Alger", Lat: 36.7267, Lng: 2.9869},
	"Bouzareha":     {Wilaya: "Alger", Lat: 36.7850, Lng: 3.0319},
	"Bouzareah":     {Wilaya: "Alger", Lat: 36.7850, Lng: 3.0319},
	"Chevaley":      {Wilaya: "Alger", Lat: 36.7333, Lng: 3.0833},
	"Choueley":      {Wilaya: "Alger", Lat: 36.7333, Lng: 3.0833},
	"El Biar":       {Wilaya: "Alger", Lat: 36.7667, Lng: 3.0167},
	"Ben Aknoun":    {Wilaya: "Alger", Lat: 36.7167, Lng: 3.0167},
	"Ben Messous":   {Wilaya: "Alger", Lat: 36.7333, Lng: 2.9833},
	"Draria":        {Wilaya: "Alger", Lat: 36.7167, Lng: 2.9833},
	"Douera":        {Wilaya: "Alger", Lat: 36.6667, Lng: 2.9333},
	"Baba hassen":   {Wilaya: "Alger", Lat: 36.6833, Lng: 2.9667},
	"El Achour":     {Wilaya: "Alger", Lat: 36.7333, Lng: 2.9500},
	"Ain Benian":    {Wilaya: "Alger", Lat: 36.8000, Lng: 2.9167},
	"Zeralda":       {Wilaya: "Alger", Lat: 36.7167, Lng: 2.8333},
	"Staoueli":      {Wilaya: "Alger", Lat: 36.7500, Lng: 2.8833},
	"Birtouta":      {Wilaya: "Alger", Lat: 36.6333, Lng: 3.0000},
	"Sidi Abdellah": {Wilaya: "Alger", Lat: 36.7167, Lng: 2.8667},

	// Wilayas principales
	"Chlef":             {Wilaya: "Chlef", Lat: 36.1647, Lng: 1.3347},
	"Ain defla":         {Wilaya: "Ain Defla", Lat: 36.2639, Lng: 1.9678},
	"Khemis meliana":    {Wilaya: "Ain Defla", Lat: 36.2639, Lng: 2.2167},
	"Medea":             {Wilaya: "Médéa", Lat: 36.2639, Lng: 2.7539},
	"Ksar El boukhari":  {Wilaya: "Médéa", Lat: 35.8833, Lng: 2.7500},
	"El Barrougha":      {Wilaya: "Médéa", Lat: 36.1500, Lng: 2.8000},
	"Tiaret":            {Wilaya: "Tiaret", Lat: 35.3711, Lng: 1.3225},
	"Tiarot (Sougueur)": {Wilaya: "Tiaret", Lat: 35.1889, Lng: 1.4967},
	"Saida":             {Wilaya: "Saïda", Lat: 34.8417, Lng: 0.1500},
	"Ouled Djellal":     {Wilaya: "Biskra", Lat: 34.4142, Lng: 4.9656},
	"Sriaoua":           {Wilaya: "Tipaza", Lat: 36.5000, Lng: 2.3833},
	"Meftah":            {Wilaya: "Blida", Lat: 36.6208, Lng: 3.2228},
	"Larbaâ":            {Wilaya: "Blida", Lat: 36.5667, Lng: 3.1547},
	"Blida":             {Wilaya: "Blida", Lat: 36.4703, Lng: 2.8277},
	"Boufarik":          {Wilaya: "Blida", Lat: 36.5750, Lng: 2.9111},
	"Kolea":             {Wilaya: "Tipaza", Lat: 36.6369, Lng: 2.7692},
	"Bousmail":          {Wilaya: "Tipaza", Lat: 36.6431, Lng: 2.6861},
	"El Hadjout":        {Wilaya: "Tipaza", Lat: 36.5167, Lng: 2.4167},
	"Tipaza":            {Wilaya: "Tipaza", Lat: 36.5892, Lng: 2.4475},
	"Mhama":             {Wilaya: "Mascara", Lat: 35.5000, Lng: 0.2667},
	"Oran":              {Wilaya: "Oran", Lat: 35.6969, Lng: -0.6331},
	"Tassemssilt":       {Wilaya: "Tissemsilt", Lat: 35.6050, Lng: 1.8111},
	"Batna":             {Wilaya: "Batna", Lat: 35.5559, Lng: 6.1742},
	"Sétif":             {Wilaya: "Sétif", Lat: 36.1905, Lng: 5.4106},
	"Constantine":       {Wilaya: "Constantine", Lat: 36.3650, Lng: 6.6147},
	"Annaba":            {Wilaya: "Annaba", Lat: 36.9000, Lng: 7.7667},
}
