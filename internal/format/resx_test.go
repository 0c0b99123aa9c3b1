package format

import (
	"strings"
	"testing"

	"github.com/devolutions-sync/cirup/internal/resource"
)

func TestResxParse(t *testing.T) {
	text := `
<?xml version="1.0" encoding="utf-8"?>
<root>
  <data name="lblBoat" xml:space="preserve">
    <value>I'm on a boat.</value>
  </data>
  <data name="lblYolo" xml:space="preserve">
    <value>You only live once</value>
  </data>
  <data name="lblDogs" xml:space="preserve">
    <value>Who let the dogs out?</value>
  </data>
</root>
`

	resources, err := Resx{}.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(resources) != 3 {
		t.Fatalf("Parse() returned %d resources, want 3", len(resources))
	}

	if resources[0].Name != "lblBoat" || resources[0].Value != "I'm on a boat." {
		t.Fatalf("resources[0] = %+v", resources[0])
	}
	if resources[1].Name != "lblYolo" || resources[1].Value != "You only live once" {
		t.Fatalf("resources[1] = %+v", resources[1])
	}
	if resources[2].Name != "lblDogs" || resources[2].Value != "Who let the dogs out?" {
		t.Fatalf("resources[2] = %+v", resources[2])
	}
}

func TestResxWrite(t *testing.T) {
	resources := []resource.Resource{
		resource.New("lblBoat", "I'm on a boat."),
		resource.New("lblYolo", "You only live once"),
		resource.New("lblDogs", "Who let the dogs out?"),
	}

	got, err := Resx{}.Write(resources)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	want := "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n" +
		"<root>\n" +
		"  <data name=\"lblBoat\" xml:space=\"preserve\">\n" +
		"    <value>I'm on a boat.</value>\n" +
		"  </data>\n" +
		"  <data name=\"lblYolo\" xml:space=\"preserve\">\n" +
		"    <value>You only live once</value>\n" +
		"  </data>\n" +
		"  <data name=\"lblDogs\" xml:space=\"preserve\">\n" +
		"    <value>Who let the dogs out?</value>\n" +
		"  </data>\n" +
		"</root>"

	if got != want {
		t.Fatalf("Write() = %q, want %q", got, want)
	}
}

func TestResxWriteEscapesSpecialChars(t *testing.T) {
	got, err := Resx{}.Write([]resource.Resource{resource.New("k", `<a & b> "quoted" 'single'`)})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(got, "&lt;a &amp; b&gt; \"quoted\" 'single'") {
		t.Fatalf("Write() did not escape text correctly: %q", got)
	}
}

func TestResxParseEmpty(t *testing.T) {
	resources, err := Resx{}.Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(resources) != 0 {
		t.Fatalf("Parse() = %+v, want empty", resources)
	}
}
