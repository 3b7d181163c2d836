package serializer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	k8sclient "github.com/computeadvisor/advisor/pkg/k8s/client"
)

func TestConfigMapWriter_CreatesThenUpdates(t *testing.T) {
	clientset := fake.NewClientset()
	ctx := context.Background()

	w := NewConfigMapWriter("advisor", "scores", FormatYAML).WithClient(clientset)
	if err := w.Serialize(ctx, testScores[:1]); err != nil {
		t.Fatalf("first Serialize: %v", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps("advisor").Get(ctx, "scores", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("ConfigMap not created: %v", err)
	}
	if cm.Labels[ManagedByLabel] != managedByValue {
		t.Errorf("missing managed-by label: %v", cm.Labels)
	}
	if !strings.Contains(cm.Data["advisor.yaml"], "netmindAI") {
		t.Errorf("unexpected data: %v", cm.Data)
	}

	if err := w.Serialize(ctx, testScores); err != nil {
		t.Fatalf("second Serialize: %v", err)
	}
	cm, err = clientset.CoreV1().ConfigMaps("advisor").Get(ctx, "scores", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !strings.Contains(cm.Data["advisor.yaml"], "akashNetwork") {
		t.Errorf("ConfigMap not updated: %v", cm.Data)
	}
}

func TestConfigMapWriter_KeepsOtherKeys(t *testing.T) {
	clientset := fake.NewClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "scores", Namespace: "advisor"},
		Data:       map[string]string{"notes.txt": "keep me"},
	})
	ctx := context.Background()

	if err := NewConfigMapWriter("advisor", "scores", FormatJSON).WithClient(clientset).Serialize(ctx, testScores); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps("advisor").Get(ctx, "scores", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cm.Data["notes.txt"] != "keep me" {
		t.Error("unrelated key was dropped")
	}
	if _, ok := cm.Data["advisor.json"]; !ok {
		t.Error("advisor.json not written")
	}
}

func TestReadConfigMap(t *testing.T) {
	clientset := fake.NewClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "input", Namespace: "advisor"},
			Data: map[string]string{
				"advisor.yaml": "platform: yaml\n",
				"advisor.json": `{"platform": "json"}`,
			},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "empty", Namespace: "advisor"},
		},
	)
	ctx := context.Background()

	data, format, err := ReadConfigMap(ctx, clientset, "advisor", "input")
	if err != nil {
		t.Fatalf("ReadConfigMap: %v", err)
	}
	if format != FormatJSON || !strings.Contains(string(data), `"json"`) {
		t.Errorf("expected the JSON document, got %s %s", format, data)
	}

	if _, _, err := ReadConfigMap(ctx, clientset, "advisor", "empty"); err == nil {
		t.Error("expected error for ConfigMap without document")
	}
	if _, _, err := ReadConfigMap(ctx, clientset, "advisor", "missing"); err == nil {
		t.Error("expected error for missing ConfigMap")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("configmap", func(t *testing.T) {
		restore := k8sclient.Override(fake.NewClientset(&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "input", Namespace: "advisor"},
			Data:       map[string]string{"advisor.yaml": "platform: akashNetwork\nscore: 30\n"},
		}))
		t.Cleanup(restore)

		r, err := Open(ctx, "cm://advisor/input")
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		var got testScore
		if err := r.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		if got.Platform != "akashNetwork" || got.Score != 30 {
			t.Errorf("unexpected document: %+v", got)
		}
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.json")
		if err := os.WriteFile(path, []byte(`{"platform": "netmindAI", "score": 70}`), 0o600); err != nil {
			t.Fatal(err)
		}
		r, err := Open(ctx, path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if r.Format() != FormatJSON {
			t.Errorf("format = %q", r.Format())
		}
		var got testScore
		if err := r.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		if got.Score != 70 {
			t.Errorf("unexpected document: %+v", got)
		}
	})

	t.Run("unknown fields", func(t *testing.T) {
		r, err := NewReader(FormatYAML, []byte("platform: x\ncolour: blue\n"))
		if err != nil {
			t.Fatal(err)
		}
		var got testScore
		if err := r.Deserialize(&got); err == nil {
			t.Error("expected unknown field error")
		}
	})

	t.Run("table is not readable", func(t *testing.T) {
		if _, err := NewReader(FormatTable, nil); err == nil {
			t.Error("expected error")
		}
	})
}
