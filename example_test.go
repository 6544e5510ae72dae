package logicexpr_test

import (
	"errors"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/logicexpr"
)

func ExampleEvaluate() {
	ctx := logicexpr.NewContext().
		SetString("foo", "baaaar").
		SetInt("length", 1)

	result, err := logicexpr.Evaluate(`foo =~ 'ba+r' && 2 > length`, ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result)
	// Output: true
}

func ExampleParse() {
	expr, err := logicexpr.Parse(`enabled&&(status>=500||region=='eu')`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(expr)

	for _, status := range []int64{200, 503} {
		ctx := logicexpr.NewContext().
			SetBool("enabled", true).
			SetInt("status", status).
			SetString("region", "us")

		result, err := logicexpr.Eval(expr, ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(status, result)
	}
	// Output:
	// enabled && (status >= 500 || region == 'eu')
	// 200 false
	// 503 true
}

func ExampleParse_error() {
	_, err := logicexpr.Parse(`(a && b`)

	fmt.Println(errors.Is(err, logicexpr.ErrParse))
	fmt.Println(err)
	// Output:
	// true
	// parse error at position 0: unmatched parenthesis '('
}

func ExampleEvaluate_typeMismatch() {
	_, err := logicexpr.Evaluate(`'a' < 'b'`, nil)

	fmt.Println(errors.Is(err, logicexpr.ErrTypeMismatch))
	fmt.Println(err)
	// Output:
	// true
	// logicexpr: type mismatch: operator < is not defined for string and string
}

func ExampleSchema_Validate() {
	schema := logicexpr.NewSchema().
		AddField("http.status", logicexpr.TypeInt).
		AddField("http.secure", logicexpr.TypeBool)

	expr, err := logicexpr.Parse(`http.secure && http.size > 1024`)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(schema.Validate(expr))
	// Output: logicexpr: unknown field: http.size
}

func ExampleContext_UnmarshalYAML() {
	data := []byte(`
host: example.com
port: 443
load: 0.75
secure: true
`)

	var ctx logicexpr.Context
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		log.Fatal(err)
	}

	for _, key := range ctx.Keys() {
		v, _ := ctx.Get(key)
		fmt.Printf("%s %s %s\n", key, v.Type(), v)
	}
	// Output:
	// host string example.com
	// load float 0.75
	// port integer 443
	// secure boolean true
}
