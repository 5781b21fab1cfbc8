package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) products(args mock.Arguments) ([]Product, error) {
	var out []Product
	if v := args.Get(0); v != nil {
		out = v.([]Product)
	}
	return out, args.Error(1)
}

func (m *mockGateway) ListAll(ctx context.Context) ([]Product, error) {
	return m.products(m.Called(ctx))
}

func (m *mockGateway) ListAvailable(ctx context.Context) ([]Product, error) {
	return m.products(m.Called(ctx))
}

func (m *mockGateway) ListSelected(ctx context.Context) ([]Product, error) {
	return m.products(m.Called(ctx))
}

func (m *mockGateway) Search(ctx context.Context, keyword string) ([]Product, error) {
	return m.products(m.Called(ctx, keyword))
}

func (m *mockGateway) Select(ctx context.Context, p Product) (Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Product), args.Error(1)
}

func (m *mockGateway) Delete(ctx context.Context, p Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockGateway) Save(ctx context.Context, d Draft) (Product, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(Product), args.Error(1)
}

func (m *mockGateway) Get(ctx context.Context, id int) (Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Product), args.Error(1)
}

func (m *mockGateway) Update(ctx context.Context, p Product) (Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(Product), args.Error(1)
}

type recordingNavigator struct {
	paths []string
	err   error
}

func (n *recordingNavigator) Navigate(path string) error {
	n.paths = append(n.paths, path)
	return n.err
}
