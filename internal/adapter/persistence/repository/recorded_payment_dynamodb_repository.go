package repository

import (
	"context"
	"errors"
	"time"

	"payment_relay/internal/domain/entities"
	"payment_relay/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the ledger uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type recordedPaymentItem struct {
	TransactionRef  string `dynamodbav:"transaction_ref"`
	OrderID         string `dynamodbav:"order_id"`
	ExternalID      int64  `dynamodbav:"external_id"`
	Status          string `dynamodbav:"status"`
	InvoiceID       string `dynamodbav:"invoice_id,omitempty"`
	PaymentRecordID string `dynamodbav:"payment_record_id,omitempty"`
	CreatedAt       string `dynamodbav:"created_at"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// RecordedPaymentDynamoRepository keeps the recording ledger in DynamoDB.
//
// Table requirements:
//   - PK: transaction_ref (string)
type RecordedPaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IRecordingLedger = (*RecordedPaymentDynamoRepository)(nil)

func NewRecordedPaymentDynamoRepository(ddb DynamoAPI, tableName string) *RecordedPaymentDynamoRepository {
	return &RecordedPaymentDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *RecordedPaymentDynamoRepository) Claim(ctx context.Context, e entities.LedgerEntry) error {
	now := r.now().UTC()
	e.Status = entities.LedgerStatusClaimed
	e.CreatedAt, e.UpdatedAt = now, now

	av, err := attributevalue.MarshalMap(toRecordedPaymentItem(e))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#ref)"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "transaction_ref",
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return entities.ErrTransactionAlreadySeen
	}
	return err
}

func (r *RecordedPaymentDynamoRepository) MarkRecorded(ctx context.Context, transactionRef, invoiceID, paymentRecordID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              refKey(transactionRef),
		UpdateExpression: aws.String("SET #status = :status, invoice_id = :inv, payment_record_id = :pay, updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(entities.LedgerStatusRecorded)},
			":inv":    &types.AttributeValueMemberS{Value: invoiceID},
			":pay":    &types.AttributeValueMemberS{Value: paymentRecordID},
			":now":    &types.AttributeValueMemberS{Value: r.now().UTC().Format(time.RFC3339Nano)},
		},
	})
	return err
}

// Release deletes a claim that never reached the recorded state.
func (r *RecordedPaymentDynamoRepository) Release(ctx context.Context, transactionRef string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 refKey(transactionRef),
		ConditionExpression: aws.String("#status = :claimed"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":claimed": &types.AttributeValueMemberS{Value: string(entities.LedgerStatusClaimed)},
		},
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return nil
	}
	return err
}

func (r *RecordedPaymentDynamoRepository) Get(ctx context.Context, transactionRef string) (entities.LedgerEntry, bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            refKey(transactionRef),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LedgerEntry{}, false, err
	}
	if len(out.Item) == 0 {
		return entities.LedgerEntry{}, false, nil
	}

	var it recordedPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.LedgerEntry{}, false, err
	}
	return fromRecordedPaymentItem(it), true, nil
}

func refKey(transactionRef string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"transaction_ref": &types.AttributeValueMemberS{Value: transactionRef},
	}
}

func toRecordedPaymentItem(e entities.LedgerEntry) recordedPaymentItem {
	return recordedPaymentItem{
		TransactionRef:  e.TransactionRef,
		OrderID:         e.OrderID,
		ExternalID:      e.ExternalID,
		Status:          string(e.Status),
		InvoiceID:       e.InvoiceID,
		PaymentRecordID: e.PaymentRecordID,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:       e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromRecordedPaymentItem(it recordedPaymentItem) entities.LedgerEntry {
	created, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updated, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.LedgerEntry{
		TransactionRef:  it.TransactionRef,
		OrderID:         it.OrderID,
		ExternalID:      it.ExternalID,
		Status:          entities.LedgerStatus(it.Status),
		InvoiceID:       it.InvoiceID,
		PaymentRecordID: it.PaymentRecordID,
		CreatedAt:       created,
		UpdatedAt:       updated,
	}
}
