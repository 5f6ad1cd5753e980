package skyclerk

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLabelService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	response := `[
		{"Id": 1, "AccountId": 5, "Name": "travel"},
		{"Id": 2, "AccountId": 5, "Name": "deductible"}
	]`

	mockTransport.On("Get", mock.Anything, "/api/v3/5/labels", url.Values(nil), mock.Anything).
		Return(response, nil)

	labels, err := client.Labels.List(context.Background())

	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "travel", labels[0].Name)

	mockTransport.AssertExpectations(t)
}

func TestLabelService_Create(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Post", mock.Anything, "/api/v3/5/labels", mock.MatchedBy(func(body interface{}) bool {
		named, ok := body.(struct {
			Name string `json:"Name"`
		})
		return ok && named.Name == "recurring"
	}), mock.Anything).Return(`{"Id": 3, "AccountId": 5, "Name": "recurring"}`, nil)

	created, err := client.Labels.Create(context.Background(), "recurring")

	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "recurring", created.Name)

	mockTransport.AssertExpectations(t)
}

func TestCategoryService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	response := `[
		{"Id": 1, "AccountId": 5, "Name": "Sales", "Type": "income"},
		{"Id": 2, "AccountId": 5, "Name": "Meals", "Type": "expense"}
	]`

	mockTransport.On("Get", mock.Anything, "/api/v3/5/categories", url.Values(nil), mock.Anything).
		Return(response, nil)

	categories, err := client.Categories.List(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "income", categories[0].Type)
	assert.Equal(t, "Meals", categories[1].Name)

	mockTransport.AssertExpectations(t)
}
