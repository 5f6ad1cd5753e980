package skyclerk

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	internalTypes "github.com/skyclerk/skyclerk-go/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTransport is a mock implementation of the Transport interface. The
// session methods are real so path building behaves; only the HTTP methods
// are mocked.
type MockTransport struct {
	mock.Mock
	session *internalTypes.Session
}

func (m *MockTransport) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	args := m.Called(ctx, path, query, result)
	return mockDecode(args.Get(0), result, args.Error(1))
}

func (m *MockTransport) GetPaginated(ctx context.Context, path string, query url.Values, result interface{}) (bool, error) {
	args := m.Called(ctx, path, query, result)
	if err := mockDecode(args.Get(0), result, args.Error(2)); err != nil {
		return false, err
	}
	return args.Bool(1), nil
}

func (m *MockTransport) Post(ctx context.Context, path string, body, result interface{}) error {
	args := m.Called(ctx, path, body, result)
	return mockDecode(args.Get(0), result, args.Error(1))
}

func (m *MockTransport) PostJSON(ctx context.Context, path string, body, result interface{}) error {
	args := m.Called(ctx, path, body, result)
	return mockDecode(args.Get(0), result, args.Error(1))
}

func (m *MockTransport) PostForm(ctx context.Context, path string, params url.Values, result interface{}) error {
	args := m.Called(ctx, path, params, result)
	return mockDecode(args.Get(0), result, args.Error(1))
}

func (m *MockTransport) Put(ctx context.Context, path string, body, result interface{}) error {
	args := m.Called(ctx, path, body, result)
	return mockDecode(args.Get(0), result, args.Error(1))
}

func (m *MockTransport) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockTransport) Upload(ctx context.Context, path string, file *internalTypes.FilePart, fields map[string]string, result interface{}) error {
	args := m.Called(ctx, path, file, fields, result)
	return mockDecode(args.Get(0), result, args.Error(1))
}

func (m *MockTransport) SetSession(session *internalTypes.Session) { m.session = session }

func (m *MockTransport) Session() *internalTypes.Session { return m.session }

func (m *MockTransport) SetToken(token string) {
	if m.session == nil {
		m.session = &internalTypes.Session{}
	}
	m.session.Token = token
}

func (m *MockTransport) SetAccountID(id int64) {
	if m.session == nil {
		m.session = &internalTypes.Session{}
	}
	m.session.AccountID = id
}

func (m *MockTransport) ClearSession() { m.session = nil }

// mockDecode injects a JSON payload into result, mirroring what the real
// transport does with a response body.
func mockDecode(payload interface{}, result interface{}, err error) error {
	if err != nil {
		return err
	}
	if payload == nil || result == nil {
		return nil
	}
	return json.Unmarshal([]byte(payload.(string)), result)
}

// newTestClient builds a client over a mock transport with an authenticated
// session in account 5.
func newTestClient(transport *MockTransport) *Client {
	transport.SetSession(&internalTypes.Session{Token: "tok", UserID: 42, AccountID: 5})
	client := &Client{
		transport: transport,
		options:   &ClientOptions{},
	}
	client.initServices()
	return client
}

func TestLedgerService_List(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	response := `[
		{"Id": 1, "AccountId": 5, "Date": "2026-01-15", "Amount": -42.50, "Note": "Office supplies"},
		{"Id": 2, "AccountId": 5, "Date": "2026-01-16", "Amount": 1200, "Note": "Invoice #7"}
	]`

	mockTransport.On("GetPaginated", mock.Anything, "/api/v3/5/ledger", mock.MatchedBy(func(query url.Values) bool {
		return query.Get("page") == "2" && query.Get("type") == "Expense" && query.Get("search") == "office"
	}), mock.Anything).Return(response, false, nil)

	list, err := client.Ledger.List(context.Background(), &LedgerListOptions{
		Page:   2,
		Type:   EntryTypeExpense,
		Search: "office",
	})

	require.NoError(t, err)
	assert.False(t, list.LastPage)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, int64(1), list.Entries[0].ID)
	assert.Equal(t, -42.50, list.Entries[0].Amount)
	assert.Equal(t, "2026-01-15", list.Entries[0].Date.String())
	assert.Equal(t, "Invoice #7", list.Entries[1].Note)

	mockTransport.AssertExpectations(t)
}

func TestLedgerService_List_DefaultsToPageOne(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("GetPaginated", mock.Anything, "/api/v3/5/ledger", mock.MatchedBy(func(query url.Values) bool {
		return query.Get("page") == "1" && !query.Has("type") && !query.Has("search")
	}), mock.Anything).Return(`[]`, true, nil)

	list, err := client.Ledger.List(context.Background(), nil)

	require.NoError(t, err)
	assert.True(t, list.LastPage)
	assert.Empty(t, list.Entries)

	mockTransport.AssertExpectations(t)
}

func TestLedgerService_Get(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	response := `{
		"Id": 9,
		"AccountId": 5,
		"Date": "2026-02-01",
		"Amount": -18.25,
		"Note": "Lunch",
		"Contact": {"Id": 3, "Name": "Corner Cafe"},
		"Category": {"Id": 4, "Name": "Meals", "Type": "expense"},
		"Labels": [{"Id": 6, "Name": "travel"}]
	}`

	mockTransport.On("Get", mock.Anything, "/api/v3/5/ledger/9", url.Values(nil), mock.Anything).
		Return(response, nil)

	entry, err := client.Ledger.Get(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, int64(9), entry.ID)
	assert.Equal(t, "Corner Cafe", entry.Contact.Name)
	assert.Equal(t, "Meals", entry.Category.Name)
	require.Len(t, entry.Labels, 1)
	assert.Equal(t, "travel", entry.Labels[0].Name)

	mockTransport.AssertExpectations(t)
}

func TestLedgerService_Create(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Post", mock.Anything, "/api/v3/5/ledger", mock.MatchedBy(func(body interface{}) bool {
		entry, ok := body.(*LedgerEntry)
		return ok && entry.Amount == -99.99 && entry.Note == "Hosting"
	}), mock.Anything).Return(`{"Id": 55, "AccountId": 5, "Amount": -99.99, "Note": "Hosting"}`, nil)

	created, err := client.Ledger.Create(context.Background(), &LedgerEntry{
		Amount: -99.99,
		Note:   "Hosting",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(55), created.ID)

	mockTransport.AssertExpectations(t)
}

func TestLedgerService_Delete(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	mockTransport.On("Delete", mock.Anything, "/api/v3/5/ledger/55").Return(nil)

	err := client.Ledger.Delete(context.Background(), 55)

	require.NoError(t, err)
	mockTransport.AssertExpectations(t)
}

func TestLedgerService_NoActiveAccount(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)
	mockTransport.SetSession(&internalTypes.Session{Token: "tok"})

	_, err := client.Ledger.List(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoActiveAccount)

	mockTransport.AssertNotCalled(t, "GetPaginated")
}
