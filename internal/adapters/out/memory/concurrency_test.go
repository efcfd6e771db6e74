package memory_test

import (
	"context"
	"sync"
	"testing"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workers = 32

func uowFactory(store *memory.Store) commands.OrderUoWFactory {
	factory := memory.NewUnitOfWorkFactory(store)
	return commands.FuncOrderUoWFactory(func() commands.OrderUoW {
		return factory.Create()
	})
}

func TestConcurrentCreatesOfTheSameID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	handler := commands.NewCreateOrderCommandHandler(uowFactory(store), services.NewOrderLifecycle(services.NewCarrierPricer()))

	template := newOrder(t, "42")
	cmd, err := commands.NewCreateOrderCommand(template.ID(), template.Customer(), template.Items())
	require.NoError(t, err)

	tags := make(chan services.OutcomeTag, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := handler.Handle(ctx, cmd)
			assert.NoError(t, err)
			if outcome != nil {
				tags <- outcome.Tag()
			}
		}()
	}
	wg.Wait()
	close(tags)

	counts := map[services.OutcomeTag]int{}
	for tag := range tags {
		counts[tag]++
	}
	assert.Equal(t, 1, counts[services.TagSuccess])
	assert.Equal(t, workers-1, counts[services.TagOrderAlreadyExists])
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentBookingsAreSerialized(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	factory := uowFactory(store)
	lifecycle := services.NewOrderLifecycle(services.NewCarrierPricer())

	created := newOrder(t, "7")
	createCmd, err := commands.NewCreateOrderCommand(created.ID(), created.Customer(), created.Items())
	require.NoError(t, err)
	_, err = commands.NewCreateOrderCommandHandler(factory, lifecycle).Handle(ctx, createCmd)
	require.NoError(t, err)

	quoteCmd, err := commands.NewCreateQuoteCommand(created.ID(), carrier.Codes())
	require.NoError(t, err)
	_, err = commands.NewCreateQuoteCommandHandler(factory, lifecycle).Handle(ctx, quoteCmd)
	require.NoError(t, err)

	book := commands.NewBookCarrierCommandHandler(factory, lifecycle)
	codes := carrier.Codes()

	tags := make(chan services.OutcomeTag, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, err := commands.NewBookCarrierCommand(kernel.MustOrderID("7"), codes[i%len(codes)])
			if !assert.NoError(t, err) {
				return
			}
			outcome, err := book.Handle(ctx, cmd)
			assert.NoError(t, err)
			if outcome != nil {
				tags <- outcome.Tag()
			}
		}()
	}
	wg.Wait()
	close(tags)

	counts := map[services.OutcomeTag]int{}
	for tag := range tags {
		counts[tag]++
	}
	assert.Equal(t, 1, counts[services.TagSuccess])
	assert.Equal(t, workers-1, counts[services.TagOrderAlreadyBooked])

	stored, err := store.Get(ctx, kernel.MustOrderID("7"))
	require.NoError(t, err)
	assert.Equal(t, order.Booked, stored.Status())
	assert.Len(t, stored.Quotes(), 3)
}
