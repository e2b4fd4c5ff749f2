package constants

// Material catalog offered when filling an environment. Free text is still
// accepted, this list only feeds the picker.
var Materials = []string{
	"Granito São Gabriel",
	"Granito Preto Absoluto",
	"Granito Branco Siena",
	"Granito Verde Ubatuba",
	"Granito Amarelo Ornamental",
	"Mármore Carrara",
	"Mármore Travertino",
	"Mármore Branco Paraná",
	"Mármore Nero Marquina",
	"Quartzo Branco",
	"Quartzo Cinza",
	"Quartzito Taj Mahal",
	"Dekton",
	"Silestone",
	"Ultracompacto Laminam",
}
