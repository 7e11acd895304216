package analysis

import "fmt"

// maxPromptChars bounds how much document text is sent to the model.
const maxPromptChars = 8000

const scientificArticlePrompt = `
Analiza este artículo científico y extrae la siguiente información en formato JSON:

{
  "tipo_documento": "artículo científico",
  "titulo": "título completo del artículo",
  "autores": ["lista", "de", "autores"],
  "institucion": "institución o universidad",
  "fecha": "fecha de publicación",
  "abstract": "resumen o abstract del artículo",
  "palabras_clave": ["keywords", "del", "artículo"],
  "metodologia": "breve descripción de la metodología utilizada",
  "resultados_principales": "principales hallazgos o resultados",
  "revista_journal": "nombre de la revista o journal si aplica",
  "doi": "DOI si está presente",
  "resumen": "RESUMEN EJECUTIVO DETALLADO del artículo de 4-6 líneas que incluya: objetivo del estudio, metodología empleada, principales hallazgos y conclusiones"
}

Si algún campo no está presente, usa null.

DOCUMENTO:
%s
`

const academicWorkPrompt = `
Analiza este trabajo académico (tarea, ensayo o proyecto) y extrae la siguiente información en formato JSON:

{
  "tipo_documento": "trabajo académico",
  "titulo": "título del trabajo",
  "autores": ["nombre", "de", "estudiantes"],
  "institucion": "universidad o institución educativa",
  "carrera": "carrera o programa",
  "materia": "materia o asignatura",
  "profesor": "nombre del profesor si está presente",
  "fecha": "fecha de entrega o realización",
  "tema_principal": "tema o tópico principal del trabajo",
  "palabras_clave": ["conceptos", "clave"],
  "resumen": "RESUMEN EJECUTIVO DETALLADO del trabajo de 4-6 líneas que incluya: tema principal, objetivos, desarrollo y conclusiones principales"
}

Si algún campo no está presente, usa null.
Para múltiples autores, usa arrays.

DOCUMENTO:
%s
`

const contractPrompt = `
Analiza DETALLADAMENTE este contrato legal y extrae la información relevante en formato JSON:

{
  "tipo_documento": "contrato",
  "tipo_contrato": "tipo específico (arrendamiento, compraventa, prestación de servicios, laboral, etc.)",
  "fecha": "fecha de firma o emisión del contrato",
  "vigencia_inicio": "fecha de inicio de vigencia",
  "vigencia_fin": "fecha de término o duración",
  "emisor": "nombre completo de la primera parte",
  "receptor": "nombre completo de la segunda parte",
  "total": "monto principal (renta, precio, salario, etc.), solo el número",
  "moneda": "moneda",
  "periodicidad_pago": "periodicidad de pago",
  "conceptos": ["obligaciones", "principales", "de", "las", "partes"],
  "condiciones_rescision": "condiciones para terminar anticipadamente",
  "jurisdiccion": "jurisdicción o fuero aplicable",
  "resumen": "RESUMEN EJECUTIVO DETALLADO del contrato de 4-6 líneas que incluya: propósito principal, partes involucradas, montos clave, vigencia y obligaciones principales"
}

Si algún campo no está presente, usa null.
Sé lo más exhaustivo y detallado posible.

DOCUMENTO COMPLETO:
%s
`

const financialDocumentPrompt = `
Analiza este documento financiero y extrae la siguiente información en formato JSON:

{
  "tipo_documento": "tipo (factura, recibo, ticket, comprobante)",
  "fecha": "fecha del documento",
  "emisor": "nombre de la empresa o persona que emite",
  "receptor": "nombre de quien recibe (si aplica)",
  "total": "monto total (solo el número, sin símbolos)",
  "moneda": "moneda (MXN, USD, etc.)",
  "rfc_emisor": "RFC o identificación fiscal del emisor",
  "conceptos": ["lista", "de", "conceptos", "o", "items"],
  "subtotal": "subtotal si existe",
  "iva": "IVA o impuestos",
  "resumen": "RESUMEN DETALLADO del documento de 3-4 líneas que incluya: tipo de transacción, monto total, emisor/receptor y conceptos principales"
}

Si algún campo no está presente, usa null.

DOCUMENTO:
%s
`

const generalPrompt = `
Analiza este documento y extrae la información más relevante en formato JSON:

{
  "tipo_documento": "tipo de documento detectado",
  "fecha": "fecha si existe",
  "emisor": "quien emite o crea el documento",
  "receptor": "destinatario si aplica",
  "tema_principal": "tema o propósito principal",
  "conceptos": ["puntos", "importantes", "del", "documento"],
  "resumen": "resumen del contenido en 2-3 líneas"
}

DOCUMENTO:
%s
`

// promptFor builds the specialized extraction prompt for a document class,
// bounding the embedded text to maxPromptChars.
func promptFor(class, text string) string {
	text = truncate(text, maxPromptChars)
	switch class {
	case ClassScientificArticle:
		return fmt.Sprintf(scientificArticlePrompt, text)
	case ClassAcademicWork:
		return fmt.Sprintf(academicWorkPrompt, text)
	case ClassContract:
		return fmt.Sprintf(contractPrompt, text)
	case ClassFinancial:
		return fmt.Sprintf(financialDocumentPrompt, text)
	default:
		return fmt.Sprintf(generalPrompt, text)
	}
}

// truncate cuts text to at most n runes without splitting a character.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
