package dashboard

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drios/docscope/internal/document"
)

var _ = Describe("ChartSlices", func() {
	When("the aggregate has a few types", func() {
		var slices []Slice

		BeforeEach(func() {
			slices = ChartSlices(document.DashboardStats{
				TypeDistribution: map[string]int{
					"trabajo_academico":    1,
					"documento_financiero": 2,
					"general":              3,
				},
			})
		})

		It("should order slices by label", func() {
			Expect(slices).To(HaveLen(3))
			Expect(slices[0].Label).To(Equal("documento_financiero"))
			Expect(slices[1].Label).To(Equal("general"))
			Expect(slices[2].Label).To(Equal("trabajo_academico"))
		})

		It("should carry the counts through", func() {
			Expect(slices[0].Count).To(Equal(2))
			Expect(slices[1].Count).To(Equal(3))
			Expect(slices[2].Count).To(Equal(1))
		})

		It("should assign palette colors by position", func() {
			Expect(slices[0].Color).To(Equal(chartPalette[0]))
			Expect(slices[1].Color).To(Equal(chartPalette[1]))
			Expect(slices[2].Color).To(Equal(chartPalette[2]))
		})
	})

	When("there are more types than palette colors", func() {
		It("should cycle the palette", func() {
			dist := map[string]int{}
			for _, label := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
				dist[label] = 1
			}
			slices := ChartSlices(document.DashboardStats{TypeDistribution: dist})
			Expect(slices).To(HaveLen(8))
			Expect(slices[6].Color).To(Equal(chartPalette[0]))
			Expect(slices[7].Color).To(Equal(chartPalette[1]))
		})
	})

	When("the aggregate is empty", func() {
		It("should produce no slices", func() {
			Expect(ChartSlices(document.DashboardStats{})).To(BeEmpty())
		})
	})
})

var _ = Describe("FormatExpenses", func() {
	It("should render the server's precomputed total with its currency", func() {
		out := FormatExpenses(document.DashboardStats{TotalExpenses: 150.5, Currency: "MXN"})
		Expect(out).To(Equal("MXN 150.50"))
	})

	It("should fall back to a plain symbol when the currency is unknown", func() {
		out := FormatExpenses(document.DashboardStats{TotalExpenses: 3})
		Expect(out).To(Equal("$ 3.00"))
	})
})

var _ = Describe("DistinctTypes", func() {
	It("should count the types present", func() {
		n := DistinctTypes(document.DashboardStats{
			TypeDistribution: map[string]int{"general": 4, "contrato": 1},
		})
		Expect(n).To(Equal(2))
	})
})
