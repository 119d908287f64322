package ioc_test

import (
	"fmt"

	"github.com/coriolis-labs/ioc"
)

type greeterService struct{ name string }

func newGreeterService() *greeterService { return &greeterService{name: "Ada"} }

func ExampleResolve() {
	services := ioc.New()
	services.AddSingleton(newGreeterService)

	provider := services.BuildProvider()
	defer provider.Close()

	greeter, err := ioc.Resolve[*greeterService](provider)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(greeter.name)
	// Output: Ada
}

type plugin interface{ Name() string }

type pluginAlpha struct{}

func (pluginAlpha) Name() string { return "alpha" }

type pluginBeta struct{}

func (pluginBeta) Name() string { return "beta" }

func ExampleResolveAll() {
	services := ioc.New()
	services.AddSingleton(func() plugin { return pluginAlpha{} })
	services.AddSingleton(func() plugin { return pluginBeta{} })

	provider := services.BuildProvider()
	defer provider.Close()

	plugins, err := ioc.ResolveAll[plugin](provider)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range plugins {
		fmt.Println(p.Name())
	}
	// Output:
	// alpha
	// beta
}
