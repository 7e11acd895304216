package dashboard

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drios/docscope/internal/document"
)

var _ = Describe("Filter", func() {
	var docs []document.StoredDocument

	BeforeEach(func() {
		first := document.StoredDocument{ID: 1, Filename: "invoice-march.pdf"}
		first.DocumentType = "documento_financiero"

		second := document.StoredDocument{ID: 2, Filename: "scan001.pdf"}
		second.DocumentType = "documento_financiero"
		second.Summary = "Invoice for consulting services"

		third := document.StoredDocument{ID: 3, Filename: "thesis.pdf"}
		third.DocumentType = "trabajo_academico"
		third.Summary = "Estudio sobre redes neuronales"

		docs = []document.StoredDocument{first, second, third}
	})

	When("searching by text", func() {
		It("should match on filename or summary, case-insensitively", func() {
			out := Filter(docs, "invoice", TypeAll)
			Expect(out).To(HaveLen(2))
			Expect(out[0].ID).To(Equal(int64(1)))
			Expect(out[1].ID).To(Equal(int64(2)))
		})

		It("should not match documents lacking both", func() {
			out := Filter(docs, "neural", TypeAll)
			Expect(out).To(BeEmpty())
		})

		It("should treat an absent summary as non-matching, not as an error", func() {
			out := Filter(docs, "consulting", TypeAll)
			Expect(out).To(HaveLen(1))
			Expect(out[0].ID).To(Equal(int64(2)))
		})
	})

	When("filtering by type", func() {
		It("should match exactly", func() {
			out := Filter(docs, "", "trabajo_academico")
			Expect(out).To(HaveLen(1))
			Expect(out[0].ID).To(Equal(int64(3)))
		})

		It("should treat the wildcard as matching everything", func() {
			Expect(Filter(docs, "", TypeAll)).To(HaveLen(3))
			Expect(Filter(docs, "", "")).To(HaveLen(3))
		})
	})

	When("combining both predicates", func() {
		It("should require both to match", func() {
			out := Filter(docs, "invoice", "trabajo_academico")
			Expect(out).To(BeEmpty())
		})
	})

	When("the query is empty", func() {
		It("should match everything in the original order", func() {
			out := Filter(docs, "", TypeAll)
			Expect(out).To(HaveLen(3))
			Expect(out[0].ID).To(Equal(int64(1)))
			Expect(out[1].ID).To(Equal(int64(2)))
			Expect(out[2].ID).To(Equal(int64(3)))
		})
	})

	It("should be stable under repeated application", func() {
		once := Filter(docs, "invoice", TypeAll)
		twice := Filter(once, "invoice", TypeAll)
		Expect(twice).To(Equal(once))
	})

	It("should not mutate the input", func() {
		Filter(docs, "invoice", "documento_financiero")
		Expect(docs).To(HaveLen(3))
		Expect(docs[2].Filename).To(Equal("thesis.pdf"))
	})
})
