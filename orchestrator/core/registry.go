package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/Ethernal-Tech/gravity-orchestrator/cosmos"
	"github.com/Ethernal-Tech/gravity-orchestrator/eth"
)

// ClientBundle groups the chain-facing collaborators the loops consume. The
// concrete implementations wrap the proto-generated gravity bindings and the
// bridge contract bindings, which live with the chain client module.
type ClientBundle struct {
	Query             cosmos.IGravityQuery
	Broadcast         cosmos.IGravityBroadcast
	EventsChecker     EventsChecker
	CheckpointQuerier CheckpointQuerier
	PriceSource       eth.ITokenPriceSource
}

// ClientFactory builds a ClientBundle on top of live connections. Factories
// register themselves at init time under a backend name selected through
// configuration.
type ClientFactory func(
	contact *cosmos.Contact, ethClient eth.IEthChainClient,
	identity ValidatorIdentity, logger hclog.Logger,
) (*ClientBundle, error)

var (
	clientFactoriesLock sync.RWMutex
	clientFactories     = map[string]ClientFactory{}
)

func RegisterClientFactory(backend string, factory ClientFactory) {
	clientFactoriesLock.Lock()
	defer clientFactoriesLock.Unlock()

	clientFactories[strings.ToLower(backend)] = factory
}

func NewClientBundle(
	backend string,
	contact *cosmos.Contact, ethClient eth.IEthChainClient,
	identity ValidatorIdentity, logger hclog.Logger,
) (*ClientBundle, error) {
	clientFactoriesLock.RLock()
	factory, exists := clientFactories[strings.ToLower(backend)]
	clientFactoriesLock.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown gravity client backend %q, registered backends: [%s]",
			backend, strings.Join(registeredBackends(), ", "))
	}

	return factory(contact, ethClient, identity, logger)
}

func registeredBackends() []string {
	names := make([]string, 0, len(clientFactories))
	for name := range clientFactories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
