package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders_etl/internal/domain/entities"
	"orders_etl/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultRunsTableName = "orders_etl_runs"

var ErrRunAlreadyExists = errors.New("run already recorded")

type runItem struct {
	ID             string   `dynamodbav:"id"`
	RequestID      string   `dynamodbav:"request_id"`
	Input          string   `dynamodbav:"input"`
	OutputBucket   string   `dynamodbav:"output_bucket"`
	Partitions     []string `dynamodbav:"partitions,omitempty"`
	Files          []string `dynamodbav:"files,omitempty"`
	FactOrders     int      `dynamodbav:"fact_orders"`
	FactOrderItems int      `dynamodbav:"fact_order_items"`
	Status         string   `dynamodbav:"status"`
	CreatedAt      string   `dynamodbav:"created_at"`
}

// RunDynamoRepository persists the run audit trail in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Run ids embed the invocation id, so a retried Lambda delivery with the same
// request id and second collides and is rejected instead of overwriting.

type RunDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IRunRepository = (*RunDynamoRepository)(nil)

func NewRunDynamoRepository(ddb *dynamodb.Client, tableName string) *RunDynamoRepository {
	if tableName == "" {
		tableName = DefaultRunsTableName
	}
	return &RunDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *RunDynamoRepository) Create(ctx context.Context, run entities.Run) (entities.Run, error) {
	av, err := attributevalue.MarshalMap(toRunItem(run))
	if err != nil {
		return entities.Run{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Run{}, fmt.Errorf("%w: %s", ErrRunAlreadyExists, run.ID)
		}
		return entities.Run{}, err
	}
	return run, nil
}

func (r *RunDynamoRepository) GetByID(ctx context.Context, id string) (entities.Run, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Run{}, err
	}
	if len(out.Item) == 0 {
		return entities.Run{}, nil
	}

	var it runItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Run{}, err
	}
	return fromRunItem(it), nil
}

func toRunItem(run entities.Run) runItem {
	return runItem{
		ID:             run.ID,
		RequestID:      run.RequestID,
		Input:          run.Input,
		OutputBucket:   run.OutputBucket,
		Partitions:     run.Partitions,
		Files:          run.Files,
		FactOrders:     run.Rows.FactOrders,
		FactOrderItems: run.Rows.FactOrderItems,
		Status:         string(run.Status),
		CreatedAt:      run.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromRunItem(it runItem) entities.Run {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Run{
		ID:           it.ID,
		RequestID:    it.RequestID,
		Input:        it.Input,
		OutputBucket: it.OutputBucket,
		Partitions:   it.Partitions,
		Files:        it.Files,
		Rows: entities.RowCounts{
			FactOrders:     it.FactOrders,
			FactOrderItems: it.FactOrderItems,
		},
		Status:    entities.RunStatus(it.Status),
		CreatedAt: createdAt,
	}
}
