// Command terraintool builds the viewer's terrain without a window and
// inspects or exports the result.
package main

func main() {
	Execute()
}
