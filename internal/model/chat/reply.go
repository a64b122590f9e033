package chat

// ReplyType tells the frontend which affordance to render for a reply.
type ReplyType string

const (
	// TypeChat is a plain conversational reply.
	TypeChat ReplyType = "chat"
	// TypeStress carries the next stress-check question.
	TypeStress ReplyType = "stress"
	// TypeOfferTest proposes the three-question stress check.
	TypeOfferTest ReplyType = "offer_test"
	// TypeResult carries a finished assessment recommendation.
	TypeResult ReplyType = "result"
	// TypeResource carries a static resource listing.
	TypeResource ReplyType = "resource"
)

// Reply is the single outward contract of the dialogue engine.
type Reply struct {
	Reply string    `json:"reply"`
	Type  ReplyType `json:"type"`
}
