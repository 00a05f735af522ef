package http

import (
	"time"

	"shipflow/internal/core/application/usecases/commands"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/shipment"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func dateOf(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type signoffBody struct {
	Name      *string `json:"name,omitempty"`
	Signature []byte  `json:"signature,omitempty"`
}

func (b *signoffBody) toPartyChanges() *shipment.PartyChanges {
	if b == nil {
		return nil
	}
	return &shipment.PartyChanges{Name: b.Name, Signature: b.Signature}
}

type damageBody struct {
	PackagingDamaged bool   `json:"packagingDamaged"`
	ProductDamaged   bool   `json:"productDamaged"`
	Notes            string `json:"notes"`
}

// shipmentChangesBody is a partial shipment form. Absent fields are left as
// they are.
type shipmentChangesBody struct {
	ShipmentDate      *openapi_types.Date `json:"shipmentDate,omitempty"`
	ItemNumber        *string             `json:"itemNumber,omitempty"`
	ItemName          *string             `json:"itemName,omitempty"`
	LotNumber         *string             `json:"lotNumber,omitempty"`
	Quantity          *decimal.Decimal    `json:"quantity,omitempty"`
	RemainingQuantity *decimal.Decimal    `json:"remainingQuantity,omitempty"`
	Unit              *string             `json:"unit,omitempty"`
	Manufacturer      *string             `json:"manufacturer,omitempty"`
	Vendor            *string             `json:"vendor,omitempty"`
	Transportation    *string             `json:"transportation,omitempty"`
	BillNumber        *string             `json:"billNumber,omitempty"`
	ExpiryDate        *openapi_types.Date `json:"expiryDate,omitempty"`
	Damage            *damageBody         `json:"damage,omitempty"`
	AttachmentRef     *string             `json:"attachmentRef,omitempty"`
	Receiver          *signoffBody        `json:"receiver,omitempty"`
	Inspector         *signoffBody        `json:"inspector,omitempty"`
	Approver          *signoffBody        `json:"approver,omitempty"`
}

func (b shipmentChangesBody) toChanges() shipment.Changes {
	changes := shipment.Changes{
		ShipmentDate:      dateOf(b.ShipmentDate),
		ItemNumber:        b.ItemNumber,
		ItemName:          b.ItemName,
		LotNumber:         b.LotNumber,
		Quantity:          b.Quantity,
		RemainingQuantity: b.RemainingQuantity,
		Unit:              b.Unit,
		Manufacturer:      b.Manufacturer,
		Vendor:            b.Vendor,
		Transportation:    b.Transportation,
		BillNumber:        b.BillNumber,
		ExpiryDate:        dateOf(b.ExpiryDate),
		AttachmentRef:     b.AttachmentRef,
		Receiver:          b.Receiver.toPartyChanges(),
		Inspector:         b.Inspector.toPartyChanges(),
		Approver:          b.Approver.toPartyChanges(),
	}
	if b.Damage != nil {
		changes.Damage = &shipment.Damage{
			PackagingDamaged: b.Damage.PackagingDamaged,
			ProductDamaged:   b.Damage.ProductDamaged,
			Notes:            b.Damage.Notes,
		}
	}
	return changes
}

type shipmentSavedBody struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
}

func toShipmentSaved(r commands.SubmitShipmentResult) shipmentSavedBody {
	return shipmentSavedBody{ID: r.ID, Code: r.Code, Status: r.Status.String()}
}

type shipmentSummaryBody struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Status        string          `json:"status"`
	ShipmentDate  string          `json:"shipmentDate"`
	ItemNumber    string          `json:"itemNumber"`
	ItemName      string          `json:"itemName"`
	LotNumber     string          `json:"lotNumber"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	ReceiverName  string          `json:"receiverName"`
	InspectorName string          `json:"inspectorName"`
	ApproverName  string          `json:"approverName"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

const dateLayout = time.DateOnly

func toShipmentSummaries(in []queries.ShipmentSummary) []shipmentSummaryBody {
	out := make([]shipmentSummaryBody, len(in))
	for i, s := range in {
		out[i] = shipmentSummaryBody{
			ID:            s.ID,
			Code:          s.Code,
			Status:        s.Status,
			ShipmentDate:  s.ShipmentDate.Format(dateLayout),
			ItemNumber:    s.ItemNumber,
			ItemName:      s.ItemName,
			LotNumber:     s.LotNumber,
			Quantity:      s.Quantity,
			Unit:          s.Unit,
			ReceiverName:  s.ReceiverName,
			InspectorName: s.InspectorName,
			ApproverName:  s.ApproverName,
			UpdatedAt:     s.UpdatedAt,
		}
	}
	return out
}

type signoffViewBody struct {
	Name      string     `json:"name"`
	Signed    bool       `json:"signed"`
	Signature []byte     `json:"signature,omitempty"`
	SignedAt  *time.Time `json:"signedAt"`
}

func toSignoffView(v queries.SignoffView) signoffViewBody {
	return signoffViewBody{
		Name:      v.Name,
		Signed:    len(v.Signature) > 0,
		Signature: v.Signature,
		SignedAt:  v.SignedAt,
	}
}

type shipmentBody struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	Status            string           `json:"status"`
	ShipmentDate      string           `json:"shipmentDate"`
	ItemNumber        string           `json:"itemNumber"`
	ItemName          string           `json:"itemName"`
	LotNumber         string           `json:"lotNumber"`
	Quantity          decimal.Decimal  `json:"quantity"`
	RemainingQuantity *decimal.Decimal `json:"remainingQuantity"`
	Unit              string           `json:"unit"`
	Manufacturer      string           `json:"manufacturer"`
	Vendor            string           `json:"vendor"`
	Transportation    string           `json:"transportation"`
	BillNumber        string           `json:"billNumber"`
	ExpiryDate        *string          `json:"expiryDate"`
	Damage            damageBody       `json:"damage"`
	AttachmentRef     string           `json:"attachmentRef"`
	Receiver          signoffViewBody  `json:"receiver"`
	Inspector         signoffViewBody  `json:"inspector"`
	Approver          signoffViewBody  `json:"approver"`
	Editable          []string         `json:"editable"`
	CreatedBy         string           `json:"createdBy"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func toShipmentBody(v queries.ShipmentView) shipmentBody {
	body := shipmentBody{
		ID:             v.ID,
		Code:           v.Code,
		Status:         v.Status,
		ShipmentDate:   v.ShipmentDate.Format(dateLayout),
		ItemNumber:     v.ItemNumber,
		ItemName:       v.ItemName,
		LotNumber:      v.LotNumber,
		Quantity:       v.Quantity,
		Unit:           v.Unit,
		Manufacturer:   v.Manufacturer,
		Vendor:         v.Vendor,
		Transportation: v.Transportation,
		BillNumber:     v.BillNumber,
		Damage: damageBody{
			PackagingDamaged: v.PackagingDamaged,
			ProductDamaged:   v.ProductDamaged,
			Notes:            v.DamageNotes,
		},
		AttachmentRef: v.AttachmentRef,
		Receiver:      toSignoffView(v.Receiver),
		Inspector:     toSignoffView(v.Inspector),
		Approver:      toSignoffView(v.Approver),
		Editable:      v.Editable,
		CreatedBy:     v.CreatedBy,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
	if v.RemainingQuantity.Valid {
		body.RemainingQuantity = &v.RemainingQuantity.Decimal
	}
	if v.ExpiryDate != nil {
		d := v.ExpiryDate.Format(dateLayout)
		body.ExpiryDate = &d
	}
	if body.Editable == nil {
		body.Editable = []string{}
	}
	return body
}

type pendingSignoffBody struct {
	Status   string    `json:"status"`
	Party    string    `json:"party"`
	Count    int64     `json:"count"`
	OldestID string    `json:"oldestId"`
	Since    time.Time `json:"since"`
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginBody struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Environment string `json:"environment"`
}

type environmentBody struct {
	Environment string `json:"environment"`
}

type sessionUserBody struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Environment string `json:"environment"`
}

type tokenBody struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      sessionUserBody `json:"user"`
}

func toTokenBody(token string, expiresAt time.Time, session kernel.Session) tokenBody {
	return tokenBody{
		Token:     token,
		ExpiresAt: expiresAt,
		User: sessionUserBody{
			ID:          session.Identity().String(),
			Email:       session.Email(),
			Role:        session.Role().String(),
			Environment: session.Environment().String(),
		},
	}
}

type decisionBody struct {
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

type registrationStatusBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type registrationBody struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	RequestedRole string    `json:"requestedRole"`
	CreatedAt     time.Time `json:"createdAt"`
}

type trainingSubmitBody struct {
	SOPCode      string              `json:"sopCode"`
	SOPTitle     string              `json:"sopTitle"`
	TrainingDate *openapi_types.Date `json:"trainingDate"`
	Trainee      *signoffBody        `json:"trainee"`
}

type trainingReviewBody struct {
	Decision string       `json:"decision"`
	Reviewer *signoffBody `json:"reviewer"`
	Notes    string       `json:"notes"`
}

type trainingRecordBody struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	SOPCode      string    `json:"sopCode"`
	SOPTitle     string    `json:"sopTitle"`
	TrainingDate string    `json:"trainingDate"`
	TraineeID    string    `json:"traineeId"`
	TraineeName  string    `json:"traineeName"`
	ReviewerName string    `json:"reviewerName,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type itemBody struct {
	Number       string `json:"number"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Manufacturer string `json:"manufacturer"`
	Vendor       string `json:"vendor"`
	Active       *bool  `json:"active,omitempty"`
}

type importResultBody struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

type batchFormRequestBody struct {
	FormType        string              `json:"formType"`
	ItemNumber      string              `json:"itemNumber"`
	ProductName     string              `json:"productName"`
	LotNumber       string              `json:"lotNumber"`
	BatchQuantity   *decimal.Decimal    `json:"batchQuantity"`
	ManufactureDate *openapi_types.Date `json:"manufactureDate"`
	Operator        *signoffBody        `json:"operator"`
}

type batchFormBody struct {
	ID              string          `json:"id"`
	FormType        string          `json:"formType"`
	ItemNumber      string          `json:"itemNumber"`
	ProductName     string          `json:"productName"`
	LotNumber       string          `json:"lotNumber"`
	BatchQuantity   decimal.Decimal `json:"batchQuantity"`
	ManufactureDate string          `json:"manufactureDate"`
	OperatorName    string          `json:"operatorName"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type createdBody struct {
	ID string `json:"id"`
}
