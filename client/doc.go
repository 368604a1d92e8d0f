// Package client provides a Go client for caskyd, the line-oriented
// TCP daemon in front of a Casky engine.
//
// Example:
//
//	c, err := client.Connect()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if err := c.Put("foo", "bar"); err != nil {
//	    log.Fatal(err)
//	}
//	val, err := c.Get("foo")
package client
