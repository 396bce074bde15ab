package cmd

import (
	"time"

	"github.com/shopctl/shopctl/internal/api"
	"github.com/shopctl/shopctl/internal/config"
)

type clientFactory struct {
	timeout time.Duration
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		timeout: flags.Timeout,
	}
}

func (f *clientFactory) client() (*api.Client, error) {
	shop, err := config.LoadShop()
	if err != nil {
		return nil, err
	}

	client := api.New(shop.Domain, shop.AccessToken)
	if shop.APIVersion != "" {
		client.APIVersion = shop.APIVersion
	}
	if shop.HostOverride != "" {
		client.SetHostOverride(shop.HostOverride)
	}
	if f.timeout > 0 {
		client.HTTP.Timeout = f.timeout
	}
	if flags.RetryWaitSet {
		client.RetryConfig.RetryWait = flags.RetryWait
	}
	return client, nil
}
