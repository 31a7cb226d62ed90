package main

import "github.com/killallgit/labeler/cmd"

// @title           Labeler API
// @version         1.0.0
// @description     Annotate activity on a video timeline and export the labels
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
