// Command contact submits a message through the site's contact relay using
// the same rules and lifecycle as the browser form.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hosteria-web/pkg/contactform"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "site base URL")
	name := flag.String("name", "", "sender name")
	email := flag.String("email", "", "sender email")
	phone := flag.String("phone", "", "sender phone (digits only, optional)")
	message := flag.String("message", "", "message body")
	timeout := flag.Duration("timeout", 15*time.Second, "request timeout")
	flag.Parse()

	log.SetPrefix("[CONTACT] ")
	log.SetFlags(0)

	form := contactform.New(contactform.NewHTTPSender(*baseURL, *timeout))
	values := map[contactform.Field]string{
		contactform.FieldName:    *name,
		contactform.FieldEmail:   *email,
		contactform.FieldPhone:   *phone,
		contactform.FieldMessage: *message,
	}
	for _, field := range contactform.Fields {
		if err := form.Change(field, values[field]); err != nil {
			log.Fatal(err)
		}
		if err := form.Blur(field); err != nil {
			log.Fatal(err)
		}
	}

	if !form.CanSubmit() {
		for _, field := range contactform.Fields {
			if msg, shown := form.Error(field); shown {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
		}
		os.Exit(2)
	}

	if err := submit(form); err != nil {
		log.Fatalf("Hubo un error al enviar. Por favor intente nuevamente. (%v)", err)
	}
	fmt.Println("Gracias por contactarnos. Responderemos a la brevedad.")
}

func submit(form *contactform.Form) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return form.Submit(ctx)
}
