package main

import (
	"tribute-api/internal/config"
	"tribute-api/pkg/lambda"
	"tribute-api/pkg/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	awslambda.Start(lambda.NewHandler("get-tributes", container.Tributes.HandleList, container.Warmer, container.Logger))
}
