package students_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/jonwraymond/studentops/apiclient"
	"github.com/jonwraymond/studentops/students"
)

// newExampleAPI serves the two student endpoints used by the examples.
func newExampleAPI() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pozos/api/v1.0/students", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":1,"name":"Alice","age":12}`)
	})
	mux.HandleFunc("GET /pozos/api/v1.0/get_student_ages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"student_ages":{"Bob":10}}`)
	})
	return httptest.NewServer(mux)
}

func newExampleService(baseURL string) *students.Service {
	client, err := apiclient.NewClient(apiclient.ClientConfig{
		BaseURL:     baseURL,
		Credentials: &apiclient.Credentials{Username: "toto", Password: "python"},
		Timeout:     time.Second,
	}, nil)
	if err != nil {
		panic(err)
	}
	return students.NewService(client)
}

func ExampleService_Create() {
	api := newExampleAPI()
	defer api.Close()
	svc := newExampleService(api.URL)

	created, err := svc.Create(context.Background(), "Alice", 12)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(created.Message)
	// Output:
	// Student Alice created successfully!
}

func ExampleService_Create_validation() {
	api := newExampleAPI()
	defer api.Close()
	svc := newExampleService(api.URL)

	_, err := svc.Create(context.Background(), "", 0)

	var verr *students.ValidationError
	fmt.Println("Validation:", errors.Is(err, students.ErrValidation))
	fmt.Println("Field:", errors.As(err, &verr) && verr.Field == "name")
	fmt.Println("Message:", students.UserMessage(err, "unexpected"))
	// Output:
	// Validation: true
	// Field: true
	// Message: Please provide valid name and age
}

func ExampleService_List() {
	api := newExampleAPI()
	defer api.Close()
	svc := newExampleService(api.URL)

	ages, err := svc.List(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(ages)
	// Output:
	// map[Bob:10]
}

func ExampleService_List_unreachable() {
	api := newExampleAPI()
	base := api.URL
	api.Close()
	svc := newExampleService(base)

	_, err := svc.List(context.Background())
	fmt.Println("API failure:", errors.Is(err, students.ErrAPI))
	fmt.Println("Message:", students.UserMessage(err, "unexpected"))
	// Output:
	// API failure: true
	// Message: Failed to connect to API server
}
