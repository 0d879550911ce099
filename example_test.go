package envmap_test

import (
	"fmt"

	"github.com/lucasyvas/envmap"
)

func ExampleLoad() {
	env, err := envmap.Load(envmap.Request{
		"REQUIRED": nil,
		"OPTIONAL": envmap.Default("default"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(env)
}

func ExampleLoadFrom() {
	store := envmap.NewMapStore(map[string]string{"REQUIRED": "1"})

	env, err := envmap.LoadFrom(store, envmap.Request{
		"REQUIRED": nil,
		"OPTIONAL": envmap.Default("default"),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(env["REQUIRED"], env["OPTIONAL"])
	// Output: 1 default
}
