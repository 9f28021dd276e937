package demo

import (
	"fmt"
	"strings"

	"github.com/louisbranch/jweb/internal/ngcode"
	"github.com/louisbranch/jweb/internal/services/jweb/html"
)

const openDialogMethod = `openExampleDialog(data: any): void {
	this.dialog.open(ExampleDialogComponent, {
		width: '%s',
		height: '%s',
		data: data
	})%s;
}`

const dialogResultHandler = `.afterClosed().subscribe(result => {
	if (result !== undefined) {
		%s
	}
})`

// ExampleDialog builds the dialog host element. Its parent gains the
// dialog service and module through OnParent configuration.
func ExampleDialog() *html.Element {
	c := ngcode.NewComponent("ExampleDialogComponent")
	c.Config.Add(
		ngcode.ConstructorParameter{Value: "public dialogRef: ExampleDialogRef<any>"},
		ngcode.ConstructorParameter{Value: "@Inject(EXAMPLE_DIALOG_DATA) public data: any"},
		ngcode.ConstructorParameter{Value: "public dialog: ExampleDialog", OnParent: true},
		ngcode.ImportReference{Name: "Inject", Reference: "@angular/core"},
		ngcode.ImportReference{Name: "ExampleDialogRef", Reference: "./example-dialog-ref"},
		ngcode.ImportReference{Name: "EXAMPLE_DIALOG_DATA", Reference: "./example-dialog-data"},
		ngcode.ImportReference{Name: "ExampleDialog", Reference: "./example-dialog", OnParent: true},
		ngcode.ImportModule{Name: "ExampleDialogModule"},
		ngcode.Method{Value: "closeDialog(returnedData : any) {\n\tthis.dialogRef.close(returnedData);\n}"},
	)
	return html.Div().AddClass("example-dialog").AsComponent(c).
		Add(html.Heading(2, "Example dialog"), html.Button("Close").AddAttribute("(click)", "closeDialog(data)"))
}

// OpenDialogMethod renders the parent-side method that opens the dialog.
func OpenDialogMethod(width, height, resultHandler string) string {
	handler := ""
	if strings.TrimSpace(resultHandler) != "" {
		handler = fmt.Sprintf(dialogResultHandler, resultHandler)
	}
	return fmt.Sprintf(openDialogMethod, width, height, handler)
}

// ConfigureDialogButton wires button to open the dialog. The configuration
// lands on the component enclosing the button.
func ConfigureDialogButton(button *html.Element, width, height, data, resultHandler string) *html.Element {
	if strings.TrimSpace(data) == "" {
		data = "{}"
	}
	return button.
		Configure(
			ngcode.ImportReference{Name: "ExampleDialog", Reference: "./example-dialog"},
			ngcode.ImportModule{Name: "ExampleDialogModule"},
			ngcode.ConstructorParameter{Value: "public dialog: ExampleDialog"},
			ngcode.Method{Value: OpenDialogMethod(width, height, resultHandler)},
		).
		AddAttribute("(click)", "openExampleDialog("+data+")")
}

// ExampleComponent builds the home page component: a counter driven by a
// server event and a button opening the dialog.
func ExampleComponent(clicks int) *html.Element {
	c := ngcode.NewComponent("ExampleComponent")
	c.Config.Add(
		ngcode.Field{Value: "staticTypescriptField : string = ''"},
		ngcode.Field{Value: "clicks : number = 0"},
		ngcode.HookBody{Hook: ngcode.OnInit, Value: "this.staticTypescriptField = 'ready';"},
		ngcode.HookBody{Hook: ngcode.AfterContentChecked, Value: "this.clicks = this.clicks + 0;"},
		ngcode.Method{Value: "staticMethod() {\n\treturn this.staticTypescriptField;\n}"},
		ngcode.ImportModule{Name: "CommonModule"},
		ngcode.ImportReference{Name: "CommonModule", Reference: "@angular/common"},
	)
	counter := html.Span(fmt.Sprintf("Clicked %d times", clicks)).SetID(CounterID).AddStyle("font-weight", "bold")
	click := html.Button("Click me").SetID("clickButton").AddAttribute("data-jw-event", clickEventName)
	open := ConfigureDialogButton(html.Button("Open dialog"), "400px", "300px", "{source: 'home'}", "console.log(result);")
	return html.Div().SetID("example").AddStyle("padding", "1rem").AsComponent(c).
		Add(html.Heading(1, "jweb example"), counter, click, open, ExampleDialog())
}

// RabbitMQPage builds the queue page component backed by the socket client.
func RabbitMQPage() *html.Element {
	socket := ngcode.NewService("SocketClientService")
	socket.Config.Add(
		ngcode.Field{Value: "socket? : WebSocket"},
		ngcode.Method{Value: "connect(url : string) {\n\tthis.socket = new WebSocket(url);\n}"},
	)
	provider := ngcode.NewService("RabbitMQProvider")
	provider.Config.Add(ngcode.Inject{Value: "SocketClientService", ReferenceName: "socketClient"},
		ngcode.ComponentReference{Target: socket})

	c := ngcode.NewComponent("RabbitMQPage")
	c.Config.Add(
		ngcode.ComponentReference{Target: provider},
		ngcode.ComponentReference{Target: socket},
		ngcode.ConstructorParameter{Value: "private rabbitMqProvider : RabbitMQProvider"},
		ngcode.Input{Name: "queue", Type: "string"},
		ngcode.EventOutput{Name: "published", Type: "string"},
		ngcode.HookBody{Hook: ngcode.OnDestroy, Value: "this.rabbitMqProvider.socketClient.socket?.close();"},
	)
	publish := html.Button("Publish").SetID("publishButton").AddAttribute("data-jw-event", publishEventName)
	return html.Div().SetID("rabbit").AsComponent(c).
		Add(html.Heading(1, "Queue"), html.Div().SetID(FeedID).AddAttribute("data-jw-data", feedName), publish)
}
