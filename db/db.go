package db

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/jsphweid/midicoach/config"
	"github.com/jsphweid/midicoach/model"
	"github.com/pkg/errors"
)

// item is the stored form of one analysis. PK is the content hash of the
// MIDI bytes; Analysis holds the JSON encoded result.
type item struct {
	PK       string `dynamodbav:"PK"`
	Analysis string `dynamodbav:"Analysis"`
}

// DynamoCache keeps analysis results keyed by content hash.
type DynamoCache struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamoCache(cfg *config.Config) (*DynamoCache, error) {
	endpoint := cfg.DynamoEndpoint
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.DynamoRegion),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return &DynamoCache{client: dynamodb.New(sess), table: cfg.CacheTable}, nil
}

func keyFor(hash string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(hash)},
	}
}

// Get returns the cached analysis for hash. A missing item is not an error.
func (c *DynamoCache) Get(ctx context.Context, hash string) (*model.AnalysisResult, bool, error) {
	out, err := c.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key:       keyFor(hash),
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "Error from DynamoDB")
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	res, err := fromItem(out.Item)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (c *DynamoCache) Put(ctx context.Context, hash string, a *model.AnalysisResult) error {
	av, err := toItem(hash, a)
	if err != nil {
		return err
	}
	_, err = c.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      av,
	})
	return errors.Wrap(err, "Error from DynamoDB")
}

func toItem(hash string, a *model.AnalysisResult) (map[string]*dynamodb.AttributeValue, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, errors.Wrap(err, "encoding analysis")
	}
	av, err := dynamodbattribute.MarshalMap(item{PK: hash, Analysis: string(data)})
	return av, errors.Wrap(err, "marshalling cache item")
}

func fromItem(av map[string]*dynamodb.AttributeValue) (*model.AnalysisResult, error) {
	var it item
	if err := dynamodbattribute.UnmarshalMap(av, &it); err != nil {
		return nil, errors.Wrap(err, "unmarshalling cache item")
	}
	var res model.AnalysisResult
	if err := json.Unmarshal([]byte(it.Analysis), &res); err != nil {
		return nil, errors.Wrapf(err, "decoding cached analysis %s", it.PK)
	}
	return &res, nil
}
