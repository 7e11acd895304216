package dashboard

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drios/docscope/internal/document"
)

var _ = Describe("Store", func() {
	var (
		collaborator *mockCollaborator
		confirmed    bool
		store        *Store
	)

	BeforeEach(func() {
		collaborator = newMockCollaborator()
		collaborator.setDocs([]document.StoredDocument{
			{ID: 1, Filename: "invoice-march.pdf"},
			{ID: 2, Filename: "thesis.pdf"},
		})
		collaborator.stats = document.DashboardStats{
			TotalDocuments:   2,
			TypeDistribution: map[string]int{"documento_financiero": 1, "trabajo_academico": 1},
			TotalExpenses:    150.5,
			Currency:         "MXN",
		}
		confirmed = true
		store = NewStore(collaborator, func(document.StoredDocument) bool { return confirmed })
	})

	Describe("Refresh", func() {
		When("both fetches succeed", func() {
			BeforeEach(func() {
				Expect(store.Refresh(context.Background())).To(Succeed())
			})

			It("should cache the listing in fetch order", func() {
				docs := store.Documents()
				Expect(docs).To(HaveLen(2))
				Expect(docs[0].Filename).To(Equal("invoice-march.pdf"))
				Expect(docs[1].Filename).To(Equal("thesis.pdf"))
			})

			It("should cache the aggregate", func() {
				Expect(store.Stats().TotalDocuments).To(Equal(2))
				Expect(store.Stats().Currency).To(Equal("MXN"))
			})

			It("should report loaded", func() {
				Expect(store.Loaded()).To(BeTrue())
			})
		})

		When("the collection is empty", func() {
			BeforeEach(func() {
				collaborator.setDocs(nil)
				Expect(store.Refresh(context.Background())).To(Succeed())
			})

			It("should cache an empty, non-nil listing", func() {
				Expect(store.Documents()).NotTo(BeNil())
				Expect(store.Documents()).To(BeEmpty())
			})
		})

		When("the stats fetch fails", func() {
			var err error

			BeforeEach(func() {
				Expect(store.Refresh(context.Background())).To(Succeed())

				collaborator.setDocs([]document.StoredDocument{{ID: 3, Filename: "new.pdf"}})
				collaborator.statsErr = errors.New("boom")
				err = store.Refresh(context.Background())
			})

			It("should fail", func() {
				Expect(err).To(HaveOccurred())
			})

			It("should keep the prior listing and aggregate intact", func() {
				docs := store.Documents()
				Expect(docs).To(HaveLen(2))
				Expect(docs[0].Filename).To(Equal("invoice-march.pdf"))
				Expect(store.Stats().TotalDocuments).To(Equal(2))
			})
		})

		When("a newer refresh overtakes a stalled one", func() {
			var (
				gate     chan struct{}
				firstErr chan error
			)

			BeforeEach(func() {
				gate = make(chan struct{})
				collaborator.listGate = gate
				firstErr = make(chan error, 1)
				go func() {
					firstErr <- store.Refresh(context.Background())
				}()
				// Wait until the stalled refresh has consumed the gate.
				Eventually(func() chan struct{} {
					collaborator.mu.Lock()
					defer collaborator.mu.Unlock()
					return collaborator.listGate
				}).Should(BeNil())

				collaborator.setDocs([]document.StoredDocument{{ID: 9, Filename: "fresh.pdf"}})
				Expect(store.Refresh(context.Background())).To(Succeed())
				close(gate)
			})

			It("should discard the stalled refresh's results", func() {
				Eventually(firstErr).Should(Receive(MatchError(ErrRefreshSuperseded)))
				docs := store.Documents()
				Expect(docs).To(HaveLen(1))
				Expect(docs[0].Filename).To(Equal("fresh.pdf"))
			})
		})
	})

	Describe("Remove", func() {
		BeforeEach(func() {
			Expect(store.Refresh(context.Background())).To(Succeed())
		})

		When("the removal is confirmed", func() {
			BeforeEach(func() {
				Expect(store.Remove(context.Background(), 1)).To(Succeed())
			})

			It("should issue the delete", func() {
				Expect(collaborator.deleted).To(Equal([]int64{1}))
			})

			It("should refresh the listing afterwards", func() {
				docs := store.Documents()
				Expect(docs).To(HaveLen(1))
				Expect(docs[0].ID).To(Equal(int64(2)))
			})
		})

		When("the removal is declined", func() {
			var err error

			BeforeEach(func() {
				confirmed = false
				err = store.Remove(context.Background(), 1)
			})

			It("should refuse without touching the store", func() {
				Expect(err).To(MatchError(ErrRemoveNotConfirmed))
				Expect(collaborator.deleted).To(BeEmpty())
				Expect(store.Documents()).To(HaveLen(2))
			})
		})

		When("no confirmer was provided", func() {
			BeforeEach(func() {
				store = NewStore(collaborator, nil)
				Expect(store.Refresh(context.Background())).To(Succeed())
			})

			It("should refuse every removal", func() {
				Expect(store.Remove(context.Background(), 1)).To(MatchError(ErrRemoveNotConfirmed))
				Expect(collaborator.deleted).To(BeEmpty())
			})
		})

		When("the delete itself fails", func() {
			var err error

			BeforeEach(func() {
				collaborator.deleteErr = errors.New("boom")
				err = store.Remove(context.Background(), 1)
			})

			It("should surface the failure and keep the cache", func() {
				Expect(err).To(HaveOccurred())
				Expect(store.Documents()).To(HaveLen(2))
			})
		})
	})
})
