package response

import (
	"time"

	"offer-service/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type OfferResponse struct {
	ID          string    `json:"id"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	ExpiryDate  time.Time `json:"expiry_date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   int64     `json:"created_at"`
	UpdatedAt   int64     `json:"updated_at"`
}

func FromOfferView(v *queries.OfferView) *OfferResponse {
	resp := &OfferResponse{}
	// copier fills the identically shaped fields; the typed ones follow
	_ = copier.Copy(resp, v)
	resp.ID = v.ID.String()
	resp.Price = v.Price.String()
	resp.Status = string(v.Status)
	resp.CreatedAt = v.CreatedAt.Unix()
	resp.UpdatedAt = v.UpdatedAt.Unix()
	return resp
}

func FromOfferList(views []*queries.OfferView) []*OfferResponse {
	res := make([]*OfferResponse, len(views))
	for i, v := range views {
		res[i] = FromOfferView(v)
	}
	return res
}
