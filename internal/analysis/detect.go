package analysis

import "strings"

// Document classes recognized by the keyword detector. Each class selects a
// specialized extraction prompt.
const (
	ClassScientificArticle = "articulo_cientifico"
	ClassAcademicWork      = "trabajo_academico"
	ClassContract          = "contrato"
	ClassFinancial         = "documento_financiero"
	ClassGeneral           = "general"
)

var classKeywords = []struct {
	class    string
	keywords []string
}{
	{ClassScientificArticle, []string{
		"abstract", "methodology", "referencias", "bibliografía", "doi", "issn", "journal",
	}},
	{ClassAcademicWork, []string{
		"tarea", "ensayo", "trabajo", "universidad", "profesor", "alumno", "matrícula", "carrera",
	}},
	{ClassContract, []string{
		"contrato", "arrendamiento", "cláusula", "partes", "obligaciones",
		"términos y condiciones", "vigencia", "rescisión",
	}},
	{ClassFinancial, []string{
		"factura", "ticket", "recibo", "rfc", "subtotal", "iva", "total", "comprobante",
	}},
}

// DetectClass classifies a document by scanning its text for class-specific
// keywords. The first class with any hit wins; unmatched text is "general".
func DetectClass(text string) string {
	lower := strings.ToLower(text)
	for _, c := range classKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.class
			}
		}
	}
	return ClassGeneral
}
