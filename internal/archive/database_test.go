package archive

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drios/docscope/internal/document"
)

var _ = Describe("BoltDB", func() {
	var db *BoltDB

	BeforeEach(func() {
		path := filepath.Join(GinkgoT().TempDir(), "docscope.db")
		var err error
		db, err = NewBoltDB(path)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("SaveDocument", func() {
		It("should assign sequential ids to fresh documents", func() {
			first := &document.StoredDocument{Filename: "a.pdf"}
			second := &document.StoredDocument{Filename: "b.pdf"}

			Expect(db.SaveDocument(first)).To(Succeed())
			Expect(db.SaveDocument(second)).To(Succeed())

			Expect(first.ID).To(Equal(int64(1)))
			Expect(second.ID).To(Equal(int64(2)))
		})

		It("should round-trip the stored fields", func() {
			doc := &document.StoredDocument{
				Filename:  "factura.pdf",
				PageCount: 3,
				CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
			}
			doc.DocumentType = "documento_financiero"
			doc.Issuer = document.SingleIssuer("ACME SA de CV")
			doc.Total = "1,500.50"
			Expect(db.SaveDocument(doc)).To(Succeed())

			docs, err := db.ListDocuments()
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].Filename).To(Equal("factura.pdf"))
			Expect(docs[0].PageCount).To(Equal(3))
			Expect(docs[0].CreatedAt).To(Equal(doc.CreatedAt))
			Expect(docs[0].DocumentType).To(Equal("documento_financiero"))
			Expect(docs[0].Total).To(Equal("1,500.50"))

			name, ok := docs[0].Issuer.Single()
			Expect(ok).To(BeTrue())
			Expect(name).To(Equal("ACME SA de CV"))
		})
	})

	Describe("ListDocuments", func() {
		It("should return an empty slice for a fresh database", func() {
			docs, err := db.ListDocuments()
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).NotTo(BeNil())
			Expect(docs).To(BeEmpty())
		})

		It("should iterate in insertion order", func() {
			for _, name := range []string{"first.pdf", "second.pdf", "third.pdf"} {
				Expect(db.SaveDocument(&document.StoredDocument{Filename: name})).To(Succeed())
			}

			docs, err := db.ListDocuments()
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(3))
			Expect(docs[0].Filename).To(Equal("first.pdf"))
			Expect(docs[1].Filename).To(Equal("second.pdf"))
			Expect(docs[2].Filename).To(Equal("third.pdf"))
		})
	})

	Describe("DeleteDocument", func() {
		BeforeEach(func() {
			Expect(db.SaveDocument(&document.StoredDocument{Filename: "a.pdf"})).To(Succeed())
			Expect(db.SaveDocument(&document.StoredDocument{Filename: "b.pdf"})).To(Succeed())
		})

		It("should remove the document", func() {
			Expect(db.DeleteDocument(1)).To(Succeed())

			docs, err := db.ListDocuments()
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].Filename).To(Equal("b.pdf"))
		})

		It("should treat repeated and absent deletes as done", func() {
			Expect(db.DeleteDocument(1)).To(Succeed())
			Expect(db.DeleteDocument(1)).To(Succeed())
			Expect(db.DeleteDocument(999)).To(Succeed())
		})

		It("should not reuse a deleted id", func() {
			Expect(db.DeleteDocument(2)).To(Succeed())

			doc := &document.StoredDocument{Filename: "c.pdf"}
			Expect(db.SaveDocument(doc)).To(Succeed())
			Expect(doc.ID).To(Equal(int64(3)))
		})
	})
})
