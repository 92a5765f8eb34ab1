package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	npy "github.com/Near-ring/npy-utils"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/natefinch/lumberjack.v2"
)

// A Job names one numbered file sequence and where to write its stack.
type Job struct {
	Folder  string
	Prefix  string
	Suffix  string
	Start   int
	Fortran bool
	Dtype   string
	Out     string
}

// makeFileExist checks that dir/filename exists, and creates the directory
// and file if it doesn't.
func makeFileExist(dir, filename string) (string, error) {
	// Replace 1 instance of "$HOME" in the path with the actual home directory.
	if strings.Contains(dir, "$HOME") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = strings.Replace(dir, "$HOME", home, 1)
	}

	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err2 := os.MkdirAll(dir, 0775); err2 != nil {
			return "", err2
		}
	}

	fullname := path.Join(dir, filename)
	if _, err := os.Stat(fullname); os.IsNotExist(err) {
		f, err2 := os.OpenFile(fullname, os.O_WRONLY|os.O_CREATE, 0664)
		if err2 != nil {
			return "", err2
		}
		f.Close()
	}
	return fullname, nil
}

func startLogger(pfname string) *log.Logger {
	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.SetOutput(&lumberjack.Logger{
		Filename:   pfname,
		MaxSize:    10,   // megabytes after which new file is created
		MaxBackups: 4,    // number of backups
		MaxAge:     180,  // days
		Compress:   true, // whether to gzip the backups
	})
	return logger
}

// loadJobs reads the list under the "jobs" key of the given YAML file.
func loadJobs(configFile string) ([]Job, error) {
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %s", err)
	}
	var jobs []Job
	if err := viper.UnmarshalKey("jobs", &jobs); err != nil {
		return nil, fmt.Errorf("error parsing jobs list: %s", err)
	}
	return jobs, nil
}

func runJob(j Job, runid string, logger *log.Logger) error {
	switch j.Dtype {
	case "i1":
		return stackAndSave[int8](j, runid, logger)
	case "i2":
		return stackAndSave[int16](j, runid, logger)
	case "i4":
		return stackAndSave[int32](j, runid, logger)
	case "i8":
		return stackAndSave[int64](j, runid, logger)
	case "u1":
		return stackAndSave[uint8](j, runid, logger)
	case "u2":
		return stackAndSave[uint16](j, runid, logger)
	case "u4":
		return stackAndSave[uint32](j, runid, logger)
	case "u8":
		return stackAndSave[uint64](j, runid, logger)
	case "f4":
		return stackAndSave[float32](j, runid, logger)
	case "f8", "":
		return stackAndSave[float64](j, runid, logger)
	}
	return fmt.Errorf("unknown dtype %q (want i1..i8, u1..u8, f4 or f8)", j.Dtype)
}

func stackAndSave[T npy.Element](j Job, runid string, logger *log.Logger) error {
	m, err := npy.StackFolder[T](j.Folder, j.Prefix, j.Start, j.Suffix, j.Fortran)
	if err != nil {
		return err
	}
	out := j.Out
	if out == "" {
		out = filepath.Join(j.Folder, j.Prefix+"stacked"+j.Suffix)
	}
	if err := npy.SaveMatrix(out, m.Data, m.Rows, m.Cols, m.Fortran); err != nil {
		return err
	}
	logger.Printf("run %s: stacked %s into %s (%dx%d, kind %s)",
		runid, filepath.Join(j.Folder, j.Prefix+"{i}"+j.Suffix), out, m.Rows, m.Cols, npy.KindOf[T]())
	fmt.Printf("%s: %dx%d\n", out, m.Rows, m.Cols)
	if data, ok := any(m.Data).([]float64); ok && !m.Fortran && m.Rows > 0 && m.Cols > 0 {
		d := mat.NewDense(m.Rows, m.Cols, data)
		fmt.Printf("Frobenius norm %g\n", mat.Norm(d, 2))
	}
	return nil
}

func main() {
	jobsFile := flag.String("jobs", "", "YAML file with a list of stacking jobs under the key 'jobs'")
	folder := flag.String("folder", ".", "folder holding the numbered files")
	prefix := flag.String("prefix", "", "filename part before the number")
	suffix := flag.String("suffix", ".npy", "filename part after the number")
	start := flag.Int("start", 0, "first file number to probe")
	fortran := flag.Bool("fortran", false, "expect column-major files")
	dtype := flag.String("dtype", "f8", "element type of the files (i1..i8, u1..u8, f4, f8)")
	out := flag.String("out", "", "output file (default folder/prefix + 'stacked' + suffix)")
	flag.Usage = func() {
		fmt.Println("npystack, a program to stack numbered .npy matrices into one tall matrix")
		fmt.Println("Usage:")
		flag.PrintDefaults()
	}
	flag.Parse()

	logname, err := makeFileExist(filepath.Join("$HOME", ".npystack"), "npystack.log")
	if err != nil {
		fmt.Println("could not create the log file: ", err)
		os.Exit(1)
	}
	logger := startLogger(logname)

	var jobs []Job
	if *jobsFile != "" {
		jobs, err = loadJobs(*jobsFile)
		if err != nil {
			fmt.Println("could not load jobs: ", err)
			os.Exit(1)
		}
	} else {
		jobs = []Job{{
			Folder:  *folder,
			Prefix:  *prefix,
			Suffix:  *suffix,
			Start:   *start,
			Fortran: *fortran,
			Dtype:   *dtype,
			Out:     *out,
		}}
	}

	runid := ulid.Make().String()
	logger.Printf("run %s: %d job(s)", runid, len(jobs))
	failed := 0
	for _, j := range jobs {
		if err := runJob(j, runid, logger); err != nil {
			logger.Printf("run %s: job %+v failed: %v", runid, j, err)
			fmt.Println("stacking returned error: ", err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
