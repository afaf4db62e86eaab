package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// InstructionAudit é o documento gravado por avaliação de instrução.
// Tags 'bson' em vez de 'json'.
type InstructionAudit struct {
	ID            string    `bson:"_id,omitempty"` // usamos o event_id da mensagem
	Type          string    `bson:"type"`
	Amount        int64     `bson:"amount"`
	Currency      string    `bson:"currency"`
	DebitAccount  string    `bson:"debit_account"`
	CreditAccount string    `bson:"credit_account"`
	Status        string    `bson:"status"`
	StatusCode    string    `bson:"status_code"`
	ProcessedAt   time.Time `bson:"processed_at"`
}

type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	collection := client.Database(dbName).Collection("instruction_audits")
	return &AuditRepository{collection: collection}
}

func (r *AuditRepository) Save(ctx context.Context, audit InstructionAudit) error {
	audit.ProcessedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("failed to insert instruction audit: %w", err)
	}
	return nil
}
