package ngcode

import "testing"

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{name: "ExampleComponent", want: "example.component.ts"},
		{name: "ExampleDialogComponent", want: "example-dialog.component.ts"},
		{name: "HTMLViewComponent", want: "html-view.component.ts"},
		{name: "RabbitMQPage", want: "rabbit-mq-page.component.ts"},
		{name: "Component", want: "component.component.ts"},
		{name: "Chart2dComponent", want: "chart2d.component.ts"},
	}
	for _, tc := range tests {
		if got := FileName(tc.name); got != tc.want {
			t.Fatalf("FileName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEffectiveSelector(t *testing.T) {
	t.Parallel()

	if got := NewComponent("ExampleDialogComponent").EffectiveSelector(); got != "example-dialog" {
		t.Fatalf("selector = %q, want %q", got, "example-dialog")
	}
	if got := NewDirective("OnClickListenerDirective").EffectiveSelector(); got != "[onClickListener]" {
		t.Fatalf("selector = %q, want %q", got, "[onClickListener]")
	}
	c := NewComponent("ExampleComponent")
	c.Selector = "app-example"
	if got := c.EffectiveSelector(); got != "app-example" {
		t.Fatalf("selector = %q, want %q", got, "app-example")
	}
}

func TestFilePathAndRelativeImport(t *testing.T) {
	t.Parallel()

	page := NewComponent("HomePage")
	page.Dir = "pages"
	dialog := NewComponent("ExampleDialogComponent")
	svc := NewService("SocketClientService")

	if got := page.FilePath(); got != "pages/home-page.component.ts" {
		t.Fatalf("page path = %q", got)
	}
	if got := svc.FilePath(); got != "services/socket-client.service.ts" {
		t.Fatalf("service path = %q", got)
	}
	if got := relativeImport(page, dialog); got != "../components/example-dialog.component" {
		t.Fatalf("relative import = %q", got)
	}
	other := NewComponent("OtherComponent")
	if got := relativeImport(dialog, other); got != "./other.component" {
		t.Fatalf("relative import = %q", got)
	}
}

func TestConfigSplit(t *testing.T) {
	t.Parallel()

	var cfg Config
	cfg.Add(
		Method{Value: "a()", OnParent: true},
		Method{Value: "b()"},
		ConstructorParameter{Value: "private x : X", OnParent: true},
		ImportModule{Name: "FormsModule", OnParent: true},
		Input{Name: "value"},
	)
	own, parent := cfg.Split()
	if len(own.Methods) != 1 || own.Methods[0].Value != "b()" {
		t.Fatalf("own methods = %+v", own.Methods)
	}
	if len(parent.Methods) != 1 || parent.Methods[0].OnParent {
		t.Fatalf("parent methods = %+v", parent.Methods)
	}
	if len(parent.ConstructorParameters) != 1 || len(parent.Modules) != 1 {
		t.Fatalf("parent = %+v", parent)
	}
	if len(own.Inputs) != 1 {
		t.Fatalf("inputs should stay on owner, got %+v", own.Inputs)
	}
	if cfg.Empty() {
		t.Fatal("expected non-empty config")
	}
}
