// Command visionplan turns a product vision into epics, stories, tasks and a
// sprint schedule.
package main

func main() {
	Execute()
}
