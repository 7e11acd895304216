package analysis

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("parseAnalysisJSON", func() {
	var (
		input   string
		payload map[string]any
		err     error
	)

	JustBeforeEach(func() {
		payload, err = parseAnalysisJSON(input)
	})

	When("parsing a plain JSON object", func() {
		BeforeEach(func() {
			input = `{"tipo_documento": "factura", "total": "150.00"}`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the raw payload", func() {
			Expect(payload).To(HaveKeyWithValue("tipo_documento", "factura"))
			Expect(payload).To(HaveKeyWithValue("total", "150.00"))
		})
	})

	When("the object is wrapped in markdown fences", func() {
		BeforeEach(func() {
			input = "```json\n{\"tipo_documento\": \"recibo\"}\n```"
		})

		It("should strip the fences", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(HaveKeyWithValue("tipo_documento", "recibo"))
		})
	})

	When("the object is surrounded by prose", func() {
		BeforeEach(func() {
			input = "Claro, aquí está el análisis:\n{\"resumen\": \"ok\"}\nEspero que sirva."
		})

		It("should cut to the outermost braces", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(HaveKeyWithValue("resumen", "ok"))
		})
	})

	When("nested objects are present", func() {
		BeforeEach(func() {
			input = `{"partes": {"parte_a": {"nombre": "X"}}, "total": "100"}`
		})

		It("should keep the full object", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(payload).To(HaveKey("partes"))
		})
	})

	When("there is no JSON object at all", func() {
		BeforeEach(func() {
			input = "No pude analizar el documento."
		})

		It("should return an error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	When("the braces do not contain valid JSON", func() {
		BeforeEach(func() {
			input = "{not json}"
		})

		It("should return an error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
