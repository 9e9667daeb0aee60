package kitchen

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// expiryLayout is the date format printed on labels.
const expiryLayout = "2006-01-02"

// barcodeLength is the number of hex characters kept from the digest.
const barcodeLength = 16

// LabelContext carries the data a packed item label needs besides the item
// itself.
type LabelContext struct {
	SKU         string
	OrderNumber string
}

// Label is the printable identification of a packed item.
type Label struct {
	Barcode string
	QRCode  string
}

type qrPayload struct {
	ItemID      string `json:"itemId"`
	Batch       string `json:"batch"`
	Expiry      string `json:"expiry"`
	SKU         string `json:"sku"`
	OrderNumber string `json:"orderNumber"`
}

// NewLabel derives the barcode and QR payload. The same inputs always yield
// the same label.
func NewLabel(itemID kernel.UUID, batch string, expiry time.Time, lc LabelContext) (Label, error) {
	expiryText := expiry.UTC().Format(expiryLayout)

	digest := sha256.Sum256([]byte(strings.Join([]string{itemID.String(), batch, expiryText}, "|")))
	barcode := strings.ToUpper(hex.EncodeToString(digest[:]))[:barcodeLength]

	payload, err := json.Marshal(qrPayload{
		ItemID:      itemID.String(),
		Batch:       batch,
		Expiry:      expiryText,
		SKU:         lc.SKU,
		OrderNumber: lc.OrderNumber,
	})
	if err != nil {
		return Label{}, err
	}

	return Label{Barcode: barcode, QRCode: string(payload)}, nil
}
